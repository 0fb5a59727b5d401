package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// Document Command Tests

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentCmd_Short(t *testing.T) {
	assert.Equal(t, "Manage corpus documents", documentCmd.Short)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.ElementsMatch(t,
		[]string{"list", "get", "content", "similar", "reprocess", "stats", "open"},
		commandNames)
}

func TestDocumentSubcommands_RequireOneArg(t *testing.T) {
	setupTestServices(t)

	for _, name := range []string{"get", "content", "similar", "reprocess", "open"} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, "document", name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "accepts 1 arg(s)")
		})
	}
}

// Document List Tests

func TestDocumentListCmd_Flags(t *testing.T) {
	assert.Equal(t, "1", documentListCmd.Flags().Lookup("page").DefValue)
	assert.Equal(t, "20", documentListCmd.Flags().Lookup("page-size").DefValue)
	assert.Equal(t, "false", documentListCmd.Flags().Lookup("processed").DefValue)
}

func TestDocumentListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

func TestDocumentListCmd_ListsDiscoveredFiles(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "lease.txt (txt,")
	assert.Contains(t, out, "nda.txt (txt,")
	assert.Contains(t, out, "diagram.bin (unknown,")
	assert.Contains(t, out, "Status: pending")
	assert.Contains(t, out, "Total: 3 documents (page 1 of 1)")
}

func TestDocumentListCmd_ProcessedOnly(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "list", "--processed")

	require.NoError(t, err)
	assert.NotContains(t, out, "diagram.bin")
	assert.NotContains(t, out, "Status: pending")
	assert.Contains(t, out, "Total: 2 documents (page 1 of 1)")
}

func TestDocumentListCmd_Paging(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "list", "--page", "2", "-n", "2")

	require.NoError(t, err)
	// Filename order: diagram.bin, lease.txt, nda.txt.
	assert.Contains(t, out, "nda.txt")
	assert.NotContains(t, out, "lease.txt")
	assert.Contains(t, out, "Total: 3 documents (page 2 of 2)")
}

// Document Get Tests

func TestDocumentGetCmd_ShowsContent(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)
	id := env.documentID(t, "lease.txt")

	out, err := execute(t, "document", "get", id)

	require.NoError(t, err)
	assert.Contains(t, out, "Document: "+id)
	assert.Contains(t, out, "File:      lease.txt")
	assert.Contains(t, out, "Processed: true")
	assert.Contains(t, out, "Words:     24")
	assert.Contains(t, out, "Summary:")
}

func TestDocumentGetCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "document", "get", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get document")
}

// Document Content Tests

func TestDocumentContentCmd_PrintsRawText(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "content", env.documentID(t, "nda.txt"))

	require.NoError(t, err)
	assert.Contains(t, out, "The receiving party shall keep confidential information")
}

func TestDocumentContentCmd_Unprocessed(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	_, err := execute(t, "document", "content", env.documentID(t, "diagram.bin"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoContent)
}

// Document Similar Tests

func TestDocumentSimilarCmd_Flags(t *testing.T) {
	flag := documentSimilarCmd.Flags().Lookup("threshold")
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
	assert.Equal(t, "0.2", flag.DefValue)

	flag = documentSimilarCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestDocumentSimilarCmd_ListsOtherDocuments(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)
	ndaID := env.documentID(t, "nda.txt")

	out, err := execute(t, "document", "similar", env.documentID(t, "lease.txt"), "--threshold", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] nda.txt")
	assert.Contains(t, out, ndaID)
	assert.NotContains(t, out, "lease.txt")
}

func TestDocumentSimilarCmd_NoneAboveThreshold(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "similar", env.documentID(t, "lease.txt"), "-t", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "No similar documents found.")
}

func TestDocumentSimilarCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	t.Cleanup(resetServices)

	_, err := execute(t, "document", "similar", "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

// Document Reprocess Tests

func TestDocumentReprocessCmd(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)
	writeCorpusFile(t, env.corpusDir, "lease.txt", "The tenant may terminate on notice.")

	out, err := execute(t, "document", "reprocess", env.documentID(t, "lease.txt"))

	require.NoError(t, err)
	assert.Contains(t, out, "Reprocessing document")
	assert.Contains(t, out, "Document lease.txt reprocessed successfully (6 words).")

	doc, err := env.documents.Get(t.Context(), env.documentID(t, "lease.txt"))
	require.NoError(t, err)
	assert.Equal(t, "The tenant may terminate on notice.", doc.Content.RawText)
}

func TestDocumentReprocessCmd_UnsupportedFile(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	_, err := execute(t, "document", "reprocess", env.documentID(t, "diagram.bin"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reprocess document")
}

// Document Stats Tests

func TestDocumentStatsCmd(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	out, err := execute(t, "document", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Corpus")
	assert.Contains(t, out, "Documents: 3")
	assert.Contains(t, out, "Processed: 2 (66.67%)")
	assert.Contains(t, out, "txt   2/2 processed")
	assert.Contains(t, out, "other 1 unsupported")
}

// Document Open Tests

func TestDocumentOpenCmd(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	var opened string
	orig := openCommand
	openCommand = func(path string) error {
		opened = path
		return nil
	}
	t.Cleanup(func() { openCommand = orig })

	out, err := execute(t, "document", "open", env.documentID(t, "nda.txt"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.corpusDir, "nda.txt"), opened)
	assert.Contains(t, out, "Opened document nda.txt in default application.")
}

func TestDocumentOpenCmd_OpenerFails(t *testing.T) {
	env := setupTestServices(t)
	env.processCorpus(t)

	orig := openCommand
	openCommand = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { openCommand = orig })

	_, err := execute(t, "document", "open", env.documentID(t, "nda.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open document: no display")
}

func TestDocumentCmds_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	t.Cleanup(resetServices)

	tests := [][]string{
		{"document", "list"},
		{"document", "get", "doc-1"},
		{"document", "content", "doc-1"},
		{"document", "reprocess", "doc-1"},
		{"document", "stats"},
		{"document", "open", "doc-1"},
	}
	for _, args := range tests {
		t.Run(args[1], func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "document service not configured")
		})
	}
}
