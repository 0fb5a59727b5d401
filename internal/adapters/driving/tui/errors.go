package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrProcessingUnavailable is returned when processing is requested without a scheduler.
var ErrProcessingUnavailable = errors.New("tui: processing is not available")
