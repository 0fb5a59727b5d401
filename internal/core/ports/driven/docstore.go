package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// DocumentStore persists documents and their derived content.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument creates or updates a document record.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID, including content when present.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetByFilename retrieves a document by its corpus filename.
	// Returns domain.ErrNotFound if it does not exist.
	GetByFilename(ctx context.Context, filename string) (*domain.Document, error)

	// CompleteProcessing replaces the document's content and marks it processed
	// in a single transaction. Nothing is persisted if any step fails.
	CompleteProcessing(ctx context.Context, content *domain.DocumentContent) error

	// ListDocuments returns documents ordered by filename.
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)

	// ListProcessed returns processed documents with content, ordered by filename.
	ListProcessed(ctx context.Context) ([]domain.Document, error)

	// Stats returns document counts.
	Stats(ctx context.Context) (*domain.DocumentStats, error)
}

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	// ProcessedOnly excludes unprocessed documents.
	ProcessedOnly bool

	// Offset skips the first documents.
	Offset int

	// Limit caps the number returned. Zero means no limit.
	Limit int
}
