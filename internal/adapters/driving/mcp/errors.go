// Package mcp provides an MCP (Model Context Protocol) server adapter for juris.
// It lets AI assistants search the legal corpus, read documents and trigger processing.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrProcessingUnavailable is returned by the process tool when no scheduler is wired.
var ErrProcessingUnavailable = errors.New("mcp: document processing is not available")
