package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			response: &domain.SearchResponse{
				Query: "indemnity",
				Results: []domain.SearchResult{
					{
						Document: domain.Document{
							ID:       "doc-1",
							Filename: "supply-agreement.pdf",
							Content: &domain.DocumentContent{
								Summary:  "The supplier indemnifies the customer.",
								Keywords: []string{"supplier", "indemnity"},
							},
						},
						Scores: domain.Scores{Overall: 0.4567},
					},
				},
				Pagination: domain.NewPagination(1, 20, 1),
			},
		}

		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		threshold := 0.3
		input := SearchInput{Query: "indemnity", Threshold: &threshold, Page: 1, PageSize: 5}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 1, output.Total)
		assert.False(t, output.HasNext)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "supply-agreement.pdf", output.Results[0].Title)
		assert.Equal(t, "juris://documents/doc-1", output.Results[0].URI)
		assert.Equal(t, 45.67, output.Results[0].Score)
		assert.Equal(t, "The supplier indemnifies the customer.", output.Results[0].Summary)
		assert.Equal(t, []string{"supplier", "indemnity"}, output.Results[0].Keywords)

		assert.Equal(t, "indemnity", mockSearch.lastQuery)
		assert.Equal(t, &threshold, mockSearch.lastOpts.Threshold)
		assert.Equal(t, 5, mockSearch.lastOpts.PageSize)
	})

	t.Run("no results", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "nothing"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: domain.ErrInvalidInput}
		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleSimilar(t *testing.T) {
	ctx := context.Background()

	t.Run("returns similar documents", func(t *testing.T) {
		mockSearch := &mockSearchService{
			similar: []domain.SimilarDocument{
				{Document: domain.Document{ID: "doc-2", Filename: "lease-2.docx"}, Similarity: 0.81234},
			},
		}
		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		_, output, err := server.handleSimilar(ctx, nil, SimilarInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "doc-2", output.Documents[0].DocumentID)
		assert.Equal(t, 81.23, output.Documents[0].Score)
	})

	t.Run("unprocessed reference", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrNoContent}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSimilar(ctx, nil, SimilarInput{DocumentID: "doc-1"})

		assert.ErrorIs(t, err, domain.ErrNoContent)
	})
}

func TestServer_handleProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("reports counts", func(t *testing.T) {
		sched := &mockScheduler{report: domain.ProcessingReport{Processed: 3, Errors: 1, Skipped: 7}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Scheduler: sched}, "test")
		require.NoError(t, err)

		_, output, err := server.handleProcess(ctx, nil, ProcessInput{})

		require.NoError(t, err)
		assert.Equal(t, ProcessOutput{Processed: 3, Errors: 1, Skipped: 7}, output)
	})

	t.Run("run in progress", func(t *testing.T) {
		sched := &mockScheduler{err: domain.ErrProcessingInProgress}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Scheduler: sched}, "test")
		require.NoError(t, err)

		_, _, err = server.handleProcess(ctx, nil, ProcessInput{})

		assert.ErrorIs(t, err, domain.ErrProcessingInProgress)
	})

	t.Run("no scheduler", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleProcess(ctx, nil, ProcessInput{})

		assert.True(t, errors.Is(err, ErrProcessingUnavailable))
	})
}
