// Package sqlite stores the training artifacts in a single SQLite file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A bundle holds all three artifacts so they
// can be shipped and swapped together:
//
//   - features: the ordered feature list
//   - encoder_classes: one row per (column, code, label)
//   - model: the model format and its text body
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Access
//
// BundleSource opens the file read-only for loading. Create writes a new bundle
// from artifacts that have already been loaded and validated.
package sqlite
