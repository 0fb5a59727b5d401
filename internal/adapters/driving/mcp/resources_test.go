package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "juris://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "listing URI",
			uri:      "juris://documents",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("juris://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			documents: []domain.Document{
				{ID: "doc-1", Filename: "brief.pdf", Kind: domain.FileKindPDF, Processed: true},
				{ID: "doc-2", Filename: "memo.doc", Kind: domain.FileKindDOC},
			},
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("juris://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"uri": "juris://documents/doc-1"`)
		assert.Contains(t, text, `"file_type": "doc"`)
		assert.Contains(t, text, `"processed": true`)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, makeReadResourceRequest("juris://documents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stats", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			stats: &domain.DocumentStats{
				Total:     4,
				Processed: 3,
				ByKind: map[domain.FileKind]domain.KindStats{
					domain.FileKindPDF: {Total: 4, Processed: 3},
				},
			},
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("juris://stats"))

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"total_documents": 4`)
		assert.Contains(t, text, `"processing_percentage": 75`)
		assert.Contains(t, text, `"pdf"`)
	})

	t.Run("nil document service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleStatsResource(ctx, makeReadResourceRequest("juris://stats"))

		require.Error(t, err)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("juris://documents/doc-1"))

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: &mockDocumentService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("juris://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns raw text", func(t *testing.T) {
		mockDoc := &mockDocumentService{
			document: &domain.Document{
				ID:        "doc-1",
				Processed: true,
				Content:   &domain.DocumentContent{RawText: "WHEREAS the parties agree"},
			},
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("juris://documents/doc-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "WHEREAS the parties agree", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("unprocessed document", func(t *testing.T) {
		mockDoc := &mockDocumentService{document: &domain.Document{ID: "doc-1"}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("juris://documents/doc-1"))

		assert.ErrorIs(t, err, domain.ErrNoContent)
	})

	t.Run("missing document", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Documents: mockDoc}, "test")
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("juris://documents/doc-9"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoContent)
	})
}
