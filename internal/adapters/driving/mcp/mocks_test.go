package mcp

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.DocumentService = (*mockDocumentService)(nil)
	_ driving.Scheduler       = (*mockScheduler)(nil)
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response  *domain.SearchResponse
	similar   []domain.SimilarDocument
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	m.lastQuery, m.lastOpts = query, opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}, nil
	}
	return m.response, nil
}

func (m *mockSearchService) Similar(_ context.Context, _ string, _ *float64, _ int) ([]domain.SimilarDocument, error) {
	return m.similar, m.err
}

func (m *mockSearchService) Suggest(_ context.Context, _ string) ([]domain.Suggestion, error) {
	return []domain.Suggestion{}, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	stats     *domain.DocumentStats
	err       error
}

func (m *mockDocumentService) List(_ context.Context, opts driving.ListOptions) (*driving.DocumentPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.DocumentPage{
		Documents:  m.documents,
		Pagination: domain.NewPagination(1, opts.PageSize, len(m.documents)),
	}, nil
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Stats(_ context.Context) (*domain.DocumentStats, error) {
	return m.stats, m.err
}

func (m *mockDocumentService) Reprocess(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

// mockScheduler is a mock implementation of driving.Scheduler.
type mockScheduler struct {
	report domain.ProcessingReport
	err    error
}

func (m *mockScheduler) Start(_ context.Context) error { return nil }
func (m *mockScheduler) Stop() error                   { return nil }
func (m *mockScheduler) IsRunning() bool               { return false }

func (m *mockScheduler) TriggerDocumentProcessing(_ context.Context) (domain.ProcessingReport, error) {
	return m.report, m.err
}

func (m *mockScheduler) Tasks(_ context.Context) ([]domain.ScheduledTask, error) {
	return nil, m.err
}

func (m *mockScheduler) History(_ context.Context, _ string, _ int) ([]domain.TaskResult, error) {
	return nil, m.err
}
