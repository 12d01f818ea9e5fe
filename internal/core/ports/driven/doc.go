// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArtifactSource: Reads the feature schema, encoder table and model
//   - Model: Evaluates one feature row
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil or unimplemented - the application degrades gracefully:
//
//   - ImportanceReporter: Per-feature importances. Without it the importance report is omitted.
//   - ArtifactWatcher: Drift warnings when artifact files change after loading.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
