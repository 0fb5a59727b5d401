package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	contents  map[string]domain.DocumentContent
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		contents:  make(map[string]domain.DocumentContent),
	}
}

// SaveDocument stores or updates a document. Filenames must stay unique.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" || doc.Filename == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.documents {
		if id != doc.ID && existing.Filename == doc.Filename {
			return domain.ErrInvalidInput
		}
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	stored := *doc
	stored.Content = nil
	s.documents[doc.ID] = stored
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.withContent(doc), nil
}

// GetByFilename retrieves a document by filename.
func (s *DocumentStore) GetByFilename(_ context.Context, filename string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.Filename == filename {
			return s.withContent(doc), nil
		}
	}
	return nil, domain.ErrNotFound
}

// CompleteProcessing replaces content and marks the document processed.
func (s *DocumentStore) CompleteProcessing(_ context.Context, content *domain.DocumentContent) error {
	if content == nil || content.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[content.DocumentID]
	if !ok {
		return domain.ErrNotFound
	}

	stored := copyContent(*content)
	if stored.ProcessedAt.IsZero() {
		stored.ProcessedAt = time.Now().UTC()
	}
	doc.Processed = true
	doc.UpdatedAt = stored.ProcessedAt
	s.documents[doc.ID] = doc
	s.contents[doc.ID] = stored
	return nil
}

// ListDocuments returns documents ordered by filename.
func (s *DocumentStore) ListDocuments(_ context.Context, filter driven.DocumentFilter) ([]domain.Document, error) {
	docs := s.sorted(filter.ProcessedOnly)

	start := min(max(filter.Offset, 0), len(docs))
	docs = docs[start:]
	if filter.Limit > 0 && filter.Limit < len(docs) {
		docs = docs[:filter.Limit]
	}
	return docs, nil
}

// ListProcessed returns processed documents with content, ordered by filename.
func (s *DocumentStore) ListProcessed(_ context.Context) ([]domain.Document, error) {
	return s.sorted(true), nil
}

// Stats returns document counts.
func (s *DocumentStore) Stats(_ context.Context) (*domain.DocumentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.DocumentStats{ByKind: make(map[domain.FileKind]domain.KindStats)}
	for _, doc := range s.documents {
		ks := stats.ByKind[doc.Kind]
		ks.Total++
		stats.Total++
		if doc.Processed {
			ks.Processed++
			stats.Processed++
		}
		stats.ByKind[doc.Kind] = ks
	}
	return stats, nil
}

func (s *DocumentStore) sorted(processedOnly bool) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if processedOnly && !doc.Processed {
			continue
		}
		docs = append(docs, *s.withContent(doc))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs
}

// withContent must be called with the lock held.
func (s *DocumentStore) withContent(doc domain.Document) *domain.Document {
	if content, ok := s.contents[doc.ID]; ok {
		c := copyContent(content)
		doc.Content = &c
	}
	return &doc
}

func copyContent(c domain.DocumentContent) domain.DocumentContent {
	keywords := make([]string, len(c.Keywords))
	copy(keywords, c.Keywords)
	c.Keywords = keywords
	return c
}
