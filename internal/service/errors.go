package service

import "errors"

var (
	// ErrNothingToExport is returned when an export is requested for an empty wordbook.
	ErrNothingToExport = errors.New("wordbook: nothing to export")

	// ErrEmptyImport is returned when an uploaded file decodes to zero entries.
	ErrEmptyImport = errors.New("wordbook: import file has no entries")
)
