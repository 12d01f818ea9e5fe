// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewForm is the prediction form and result.
	ViewForm
	// ViewImportances is the feature importance chart.
	ViewImportances
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewUnavailable blocks the app when the artifacts failed to load.
	ViewUnavailable
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewForm:
		return "form"
	case ViewImportances:
		return "importances"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	case ViewUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ArtifactsLoaded carries the outcome of the startup artifact load.
type ArtifactsLoaded struct {
	Status domain.ArtifactStatus
	Err    error
}

// ArtifactChanged signals that an artifact file changed on disk after load.
type ArtifactChanged struct {
	Path string
}

// CategoriesLoaded carries the known labels for each categorical column.
type CategoriesLoaded struct {
	Options map[string][]string
	Err     error
}

// PredictionCompleted carries the outcome of one prediction.
type PredictionCompleted struct {
	Prediction *domain.Prediction
	Err        error
}

// ImportancesLoaded carries the model's feature importances.
type ImportancesLoaded struct {
	Importances []domain.FeatureImportance
	Err         error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
