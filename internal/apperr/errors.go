// Package apperr defines sentinel errors shared across the import pipeline.
package apperr

import "errors"

var (
	// ErrEmptyDocument marks a source file with no content. The document is
	// skipped and the run continues.
	ErrEmptyDocument = errors.New("empty document")
	// ErrSourceNotFound marks a missing source folder. Fatal for the run.
	ErrSourceNotFound = errors.New("source folder not found")
	// ErrNoFiles marks a source folder without markdown files. Fatal for the run.
	ErrNoFiles = errors.New("no files to import found")
)
