package csvio

import "errors"

// Sentinel kinds for CSV ingestion errors.
var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrEmptyFile      = errors.New("file has no header row")
)
