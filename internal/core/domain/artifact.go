package domain

// ArtifactKind identifies one of the three training artifacts.
type ArtifactKind string

// Artifact kinds, in the order they are loaded.
const (
	// ArtifactFeatures is the ordered feature name list.
	ArtifactFeatures ArtifactKind = "features"

	// ArtifactEncoders is the per-column label encoder table.
	ArtifactEncoders ArtifactKind = "encoders"

	// ArtifactModel is the trained regression model.
	ArtifactModel ArtifactKind = "model"
)

// AllArtifactKinds returns every artifact kind in load order.
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{ArtifactFeatures, ArtifactEncoders, ArtifactModel}
}

// String returns the string representation.
func (k ArtifactKind) String() string {
	return string(k)
}

// ArtifactState is the lifecycle state of the artifact store.
type ArtifactState string

// Artifact store states.
const (
	// ArtifactStateUnloaded means Load has not run yet.
	ArtifactStateUnloaded ArtifactState = "unloaded"

	// ArtifactStateReady means all three artifacts loaded and agree.
	ArtifactStateReady ArtifactState = "ready"

	// ArtifactStateUnavailable means loading failed. It is terminal for the process.
	ArtifactStateUnavailable ArtifactState = "unavailable"
)

// ArtifactStatus is a tagged snapshot of the artifact store.
// UIs check it before rendering anything that depends on the artifacts.
type ArtifactStatus struct {
	// State is the current lifecycle state.
	State ArtifactState

	// Err is set when State is ArtifactStateUnavailable.
	Err *ArtifactError

	// Source describes where the artifacts were read from.
	Source string

	// FeatureCount is the schema length once ready.
	FeatureCount int

	// EncoderColumns lists the encoded columns once ready.
	EncoderColumns []string
}

// Ready returns true if predictions can be served.
func (s ArtifactStatus) Ready() bool {
	return s.State == ArtifactStateReady
}

// Diagnostic returns a human-readable explanation of the state.
func (s ArtifactStatus) Diagnostic() string {
	switch s.State {
	case ArtifactStateReady:
		return "artifacts loaded from " + s.Source
	case ArtifactStateUnavailable:
		if s.Err != nil {
			return s.Err.Error()
		}
		return ErrArtifactUnavailable.Error()
	default:
		return "artifacts not loaded"
	}
}
