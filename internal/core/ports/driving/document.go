package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// DocumentService exposes the document catalogue.
type DocumentService interface {
	// List returns a page of documents ordered by filename.
	List(ctx context.Context, opts ListOptions) (*DocumentPage, error)

	// Get retrieves a document with its content.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Stats summarises processing progress.
	Stats(ctx context.Context) (*domain.DocumentStats, error)

	// Reprocess forces extraction and feature derivation of one document.
	Reprocess(ctx context.Context, documentID string) (*domain.Document, error)
}

// ListOptions configures a document listing.
type ListOptions struct {
	// ProcessedOnly excludes unprocessed documents.
	ProcessedOnly bool

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of documents per page.
	PageSize int
}

// DocumentPage is one page of documents.
type DocumentPage struct {
	Documents  []domain.Document
	Pagination domain.Pagination
}
