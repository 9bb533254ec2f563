package models

import "errors"

// Error taxonomy for the pipeline. Callers classify failures with errors.Is
// and map them to HTTP statuses at the handler layer.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAuthRequired      = errors.New("authentication required")
	ErrExtractionFailure = errors.New("text extraction failed")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrStoreFailure      = errors.New("store operation failed")
)
