package tui

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

type mockSearchService struct {
	response *domain.SearchResponse
	err      error
}

func (m *mockSearchService) Search(_ context.Context, query string, _ domain.SearchOptions) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	resp := &domain.SearchResponse{Query: query}
	if m.response != nil {
		*resp = *m.response
		resp.Query = query
	}
	return resp, nil
}

func (m *mockSearchService) Similar(context.Context, string, *float64, int) ([]domain.SimilarDocument, error) {
	return nil, m.err
}

func (m *mockSearchService) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return nil, nil
}

type mockDocumentService struct {
	documents []domain.Document
	stats     *domain.DocumentStats
	err       error
}

func (m *mockDocumentService) List(_ context.Context, opts driving.ListOptions) (*driving.DocumentPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := domain.NewPagination(opts.Page, opts.PageSize, len(m.documents))
	start, end := p.Bounds()
	return &driving.DocumentPage{Documents: m.documents[start:end], Pagination: p}, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Stats(context.Context) (*domain.DocumentStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats == nil {
		return &domain.DocumentStats{}, nil
	}
	return m.stats, nil
}

func (m *mockDocumentService) Reprocess(ctx context.Context, id string) (*domain.Document, error) {
	return m.Get(ctx, id)
}

type mockScheduler struct {
	report   domain.ProcessingReport
	err      error
	triggers int
}

func (m *mockScheduler) Start(context.Context) error { return nil }
func (m *mockScheduler) Stop() error                 { return nil }
func (m *mockScheduler) IsRunning() bool             { return true }

func (m *mockScheduler) TriggerDocumentProcessing(context.Context) (domain.ProcessingReport, error) {
	m.triggers++
	return m.report, m.err
}

func (m *mockScheduler) Tasks(context.Context) ([]domain.ScheduledTask, error) {
	return nil, nil
}

func (m *mockScheduler) History(context.Context, string, int) ([]domain.TaskResult, error) {
	return nil, nil
}
