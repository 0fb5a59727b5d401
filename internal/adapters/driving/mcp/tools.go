package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string   `json:"query" jsonschema:"the search query to rank legal documents against"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum overall similarity between 0 and 1 (default 0.1)"`
	Page      int      `json:"page,omitempty" jsonschema:"1-based result page (default 1)"`
	PageSize  int      `json:"page_size,omitempty" jsonschema:"results per page (default 20, max 100)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
	Total   int                  `json:"total"`
	HasNext bool                 `json:"has_next"`
}

// SearchResultOutput represents a single search result. Scores are percentages.
type SearchResultOutput struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	URI        string   `json:"uri"`
	Score      float64  `json:"score"`
	Summary    string   `json:"summary,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// SimilarInput is the input schema for the similar documents tool.
type SimilarInput struct {
	DocumentID string   `json:"document_id" jsonschema:"the reference document ID"`
	Threshold  *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity between 0 and 1 (default 0.2)"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 10)"`
}

// SimilarOutput is the output schema for the similar documents tool.
type SimilarOutput struct {
	Documents []SearchResultOutput `json:"documents"`
	Count     int                  `json:"count"`
}

// ProcessInput is the (empty) input schema for the process tool.
type ProcessInput struct{}

// ProcessOutput is the output schema for the process tool.
type ProcessOutput struct {
	Processed int `json:"processed_count"`
	Errors    int `json:"error_count"`
	Skipped   int `json:"skipped_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Rank processed legal documents by weighted TF-IDF similarity to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_documents",
		Description: "Find documents whose text resembles a given document",
	}, s.handleSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_documents",
		Description: "Extract and analyse every unprocessed file in the corpus folder",
	}, s.handleProcess)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	resp, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{
		Threshold: input.Threshold,
		Page:      input.Page,
		PageSize:  input.PageSize,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(resp.Results)),
		Count:   len(resp.Results),
		Total:   resp.Pagination.Total,
		HasNext: resp.Pagination.HasNext,
	}
	for i, r := range resp.Results {
		output.Results[i] = resultOutput(r.Document, r.Scores.Overall)
	}
	return nil, output, nil
}

// handleSimilar handles the similar documents tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SimilarOutput, error) {
	similar, err := s.ports.Search.Similar(ctx, input.DocumentID, input.Threshold, input.Limit)
	if err != nil {
		return nil, SimilarOutput{}, err
	}

	output := SimilarOutput{
		Documents: make([]SearchResultOutput, len(similar)),
		Count:     len(similar),
	}
	for i, sd := range similar {
		output.Documents[i] = resultOutput(sd.Document, sd.Similarity)
	}
	return nil, output, nil
}

// handleProcess handles the process tool invocation.
func (s *Server) handleProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ProcessInput,
) (*mcp.CallToolResult, ProcessOutput, error) {
	if s.ports.Scheduler == nil {
		return nil, ProcessOutput{}, ErrProcessingUnavailable
	}
	report, err := s.ports.Scheduler.TriggerDocumentProcessing(ctx)
	if err != nil {
		return nil, ProcessOutput{}, err
	}
	return nil, ProcessOutput{
		Processed: report.Processed,
		Errors:    report.Errors,
		Skipped:   report.Skipped,
	}, nil
}

func resultOutput(doc domain.Document, score float64) SearchResultOutput {
	out := SearchResultOutput{
		DocumentID: doc.ID,
		Title:      doc.Title(),
		URI:        documentURI(doc.ID),
		Score:      domain.Percent(score),
	}
	if doc.Content != nil {
		out.Summary = doc.Content.Summary
		out.Keywords = doc.Content.Keywords
	}
	return out
}
