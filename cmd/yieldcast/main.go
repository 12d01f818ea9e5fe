// Command yieldcast estimates crop yield from a pre-trained LightGBM model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/artifacts"
	"github.com/custodia-labs/yieldcast/internal/adapters/driven/config/env"
	"github.com/custodia-labs/yieldcast/internal/adapters/driven/config/file"
	"github.com/custodia-labs/yieldcast/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/yieldcast/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/yieldcast/internal/adapters/driving/cli"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/core/services"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	if home, err := os.UserHomeDir(); err == nil {
		cli.SetTUIConfig(&cli.TUIConfig{LogFile: filepath.Join(home, ".yieldcast", "tui.log")})
	}

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	base, err := openConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	overrides, err := env.ParseOverrides(nil)
	if err != nil {
		return nil, err
	}
	store := env.NewConfigStore(base, overrides)
	for _, key := range store.OverriddenKeys() {
		logger.Debug("%s set from the environment", key)
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if opts.ArtifactsDir != "" {
		settings.Artifacts.Dir = opts.ArtifactsDir
	}
	if opts.Bundle != "" {
		settings.Artifacts.Bundle = opts.Bundle
	}
	if !opts.Verbose {
		if err := logger.SetLevel(settings.Log.Level.String()); err != nil {
			logger.Warn("Ignoring log level: %v", err)
		}
	}

	files := artifacts.NewFileSource(settings.Artifacts)

	var source driven.ArtifactSource = files
	var watcher driven.ArtifactWatcher
	if settings.Artifacts.UsesBundle() {
		source = sqlite.NewBundleSource(settings.Artifacts.Bundle)
		watcher = artifacts.NewFileWatcher(settings.Artifacts.Bundle)
	} else {
		watcher = artifacts.NewFileWatcher(files.Paths()...)
	}
	logger.Debug("Artifact source: %s", source.Describe())

	artifactStore := services.NewArtifactStore(source).WithWatcher(watcher)
	predictionService := services.NewPredictionService(artifactStore, settings.Display.LowYieldThreshold)

	return &cli.Services{
		Artifacts:  artifactStore,
		Prediction: predictionService,
		Settings:   settingsService,
		Export:     exporter(files),
	}, nil
}

// openConfig opens the TOML config. Without a home directory the
// settings live in memory for this run only.
func openConfig(path string) (driven.ConfigStore, error) {
	if path != "" {
		return file.NewConfigStoreFile(path)
	}
	if _, err := os.UserHomeDir(); err != nil {
		logger.Warn("No home directory, settings will not be saved: %v", err)
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore("")
}

// exporter bundles the artifact files, never an existing bundle.
func exporter(files *artifacts.FileSource) cli.BundleExporter {
	return func(ctx context.Context, out string) error {
		return sqlite.WriteBundle(ctx, out, files, files.ModelText)
	}
}
