package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file format text cannot be extracted from.
	ErrUnsupportedType = errors.New("unsupported type")

	// Processing Errors.

	// ErrFolderUnavailable indicates the corpus folder could not be opened.
	// It is distinct from an empty folder, which is not an error.
	ErrFolderUnavailable = errors.New("corpus folder unavailable")

	// ErrExtractionFailed indicates no text could be extracted from a file.
	// It is recoverable: the batch counts it and moves on.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrConverterUnavailable indicates the legacy document converter is not installed.
	ErrConverterUnavailable = errors.New("legacy document converter unavailable")

	// ErrProcessingInProgress indicates a document processing run is already active.
	ErrProcessingInProgress = errors.New("document processing in progress")

	// ErrNoContent indicates a document has not been processed yet.
	ErrNoContent = errors.New("document has no content")

	// ErrAnalyzerUnavailable indicates linguistic analysis is not configured.
	// Feature derivation degrades to its fallback behaviour.
	ErrAnalyzerUnavailable = errors.New("language analyzer unavailable")
)
