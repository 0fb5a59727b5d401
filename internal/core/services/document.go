package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes the document catalogue.
type DocumentService struct {
	docStore  driven.DocumentStore
	processor driving.CorpusProcessor
}

// NewDocumentService creates a new document service.
// The processor is only needed for Reprocess and may be nil.
func NewDocumentService(docStore driven.DocumentStore, processor driving.CorpusProcessor) *DocumentService {
	return &DocumentService{
		docStore:  docStore,
		processor: processor,
	}
}

// List returns a page of documents ordered by filename.
func (s *DocumentService) List(ctx context.Context, opts driving.ListOptions) (*driving.DocumentPage, error) {
	page, pageSize := normalisePage(opts.Page, opts.PageSize)

	stats, err := s.docStore.Stats(ctx)
	if err != nil {
		return nil, err
	}
	total := stats.Total
	if opts.ProcessedOnly {
		total = stats.Processed
	}

	pagination := domain.NewPagination(page, pageSize, total)
	from, _ := pagination.Bounds()
	docs, err := s.docStore.ListDocuments(ctx, driven.DocumentFilter{
		ProcessedOnly: opts.ProcessedOnly,
		Offset:        from,
		Limit:         pageSize,
	})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	return &driving.DocumentPage{Documents: docs, Pagination: pagination}, nil
}

// Get retrieves a document with its content.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// Stats summarises processing progress.
func (s *DocumentService) Stats(ctx context.Context) (*domain.DocumentStats, error) {
	return s.docStore.Stats(ctx)
}

// Reprocess re-extracts a known document from its recorded path.
func (s *DocumentService) Reprocess(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.processor == nil {
		return nil, fmt.Errorf("%w: no corpus processor configured", domain.ErrInvalidInput)
	}
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.processor.ProcessFile(ctx, doc.FilePath, true)
}
