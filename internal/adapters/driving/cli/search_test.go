package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

const leaseQuery = "tenant pay rent landlord premises"

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search processed documents", searchCmd.Short)
}

func TestSearchCmd_Long(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "TF-IDF")
	assert.Contains(t, searchCmd.Long, "0.3/0.4/0.3")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"threshold", "t", "0.1"},
		{"page", "p", "1"},
		{"page-size", "n", "10"},
		{"json", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := searchCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestSearchCmd_RanksProcessedDocuments(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "search", leaseQuery)

	require.NoError(t, err)
	assert.Contains(t, out, "Results: 1 matching documents (page 1 of 1, threshold 0.10)")
	assert.Contains(t, out, "[1] lease.txt")
	assert.Contains(t, out, "title ")
	assert.Contains(t, out, "The tenant shall pay rent")
	assert.NotContains(t, out, "nda.txt")
}

func TestSearchCmd_ThresholdFlag(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "search", leaseQuery, "--threshold", "0.99")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_InvalidThreshold(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search", leaseQuery, "-t", "1.5")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_NothingProcessed(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", leaseQuery)

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "search", leaseQuery, "--json")
	require.NoError(t, err)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, leaseQuery, resp.Query)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "lease.txt", resp.Results[0].Document.Filename)
	assert.Positive(t, resp.Results[0].Scores.Overall)
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	t.Cleanup(resetServices)

	_, err := execute(t, "search", "indemnity")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

// failingSearch is a search service whose backend is down.
type failingSearch struct{}

func (failingSearch) Search(context.Context, string, domain.SearchOptions) (*domain.SearchResponse, error) {
	return nil, errors.New("index offline")
}

func (failingSearch) Similar(context.Context, string, *float64, int) ([]domain.SimilarDocument, error) {
	return nil, errors.New("index offline")
}

func (failingSearch) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return nil, nil
}

func TestSearchCmd_ServiceError(t *testing.T) {
	SetServices(&Services{Search: failingSearch{}})
	t.Cleanup(resetServices)

	_, err := execute(t, "search", "indemnity")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed: index offline")
}

func TestOutputSearchTable_Pagination(t *testing.T) {
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	resp := &domain.SearchResponse{
		Query:     "warranty",
		Threshold: 0.1,
		Results: []domain.SearchResult{{
			Document: domain.Document{ID: "doc-11", Filename: "supply.docx"},
			Scores:   domain.Scores{Title: 0.1, Summary: 0.5, Content: 0.25, Overall: 0.305},
		}},
		Pagination: domain.NewPagination(2, 10, 25),
	}

	require.NoError(t, outputSearchTable(cmd, resp))

	out := buf.String()
	assert.Contains(t, out, "page 2 of 3")
	assert.Contains(t, out, "[11] supply.docx (30.50%)")
	assert.Contains(t, out, "title 10.00%  summary 50.00%  content 25.00%")
	assert.Contains(t, out, `More results: juris search "warranty" --page 3`)
}
