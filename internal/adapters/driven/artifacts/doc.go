// Package artifacts reads the training artifacts from plain files.
//
// The feature list and encoder table may be JSON or YAML, chosen by file
// extension. The model is a LightGBM text model. A FileWatcher reports
// when any of the files change after they were loaded.
package artifacts
