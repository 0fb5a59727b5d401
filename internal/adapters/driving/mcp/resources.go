package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

const (
	// URIScheme is the custom URI scheme for juris resources.
	uriScheme = "juris://"

	// maxListedDocuments caps the documents resource.
	maxListedDocuments = domain.MaxPageSize
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Documents in the corpus, ordered by filename",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Static resource for processing statistics.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Processing progress by file type",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Extracted text of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource returns the first page of documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return jsonResult(req.Params.URI, []any{})
	}

	page, err := s.ports.Documents.List(ctx, driving.ListOptions{PageSize: maxListedDocuments})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		URI       string `json:"uri"`
		FileType  string `json:"file_type"`
		Processed bool   `json:"processed"`
	}

	infos := make([]docInfo, len(page.Documents))
	for i, doc := range page.Documents {
		infos[i] = docInfo{
			ID:        doc.ID,
			Title:     doc.Title(),
			URI:       documentURI(doc.ID),
			FileType:  doc.Kind.String(),
			Processed: doc.Processed,
		}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleStatsResource returns processing statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Documents.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}

	type kindInfo struct {
		Total     int `json:"total"`
		Processed int `json:"processed"`
	}
	byType := make(map[string]kindInfo, len(stats.ByKind))
	for kind, ks := range stats.ByKind {
		byType[kind.String()] = kindInfo{Total: ks.Total, Processed: ks.Processed}
	}

	return jsonResult(req.Params.URI, map[string]any{
		"total_documents":       stats.Total,
		"processed_documents":   stats.Processed,
		"processing_percentage": stats.ProcessedPercentage(),
		"documents_by_type":     byType,
	})
}

// handleDocumentContentResource returns the extracted text of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: juris://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Documents.Get(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	if doc.Content == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoContent, docID)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content.RawText,
		}},
	}, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// documentURI builds the resource URI of a document.
func documentURI(id string) string {
	return uriScheme + "documents/" + id
}

// extractDocumentID extracts the document ID from a URI like juris://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
