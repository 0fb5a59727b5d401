package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/services"
	"github.com/custodia-labs/juris/internal/extractors"
	"github.com/custodia-labs/juris/internal/features"
)

// testEnv is a fully wired set of services over in-memory stores.
type testEnv struct {
	corpusDir string
	docs      *memory.DocumentStore
	corpus    *services.CorpusService
	search    *services.SearchService
	documents *services.DocumentService
	scheduler *services.Scheduler
	settings  *services.SettingsService
	config    *memory.ConfigStore
}

// setupTestServices installs real services backed by memory stores and a
// temporary corpus folder holding two contracts and one unsupported file.
// Globals are restored when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	writeCorpusFile(t, dir, "lease.txt",
		"The tenant shall pay rent to the landlord on the first day of each month. "+
			"The landlord shall maintain the premises in good repair.")
	writeCorpusFile(t, dir, "nda.txt",
		"The receiving party shall keep confidential information secret and shall not "+
			"disclose it to any third party without prior written consent.")
	writeCorpusFile(t, dir, "diagram.bin", string([]byte{0x00, 0x01, 0x02, 0xff}))

	docs := memory.NewDocumentStore()
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)
	require.NoError(t, settings.Set("corpus_dir", dir))

	corpus := services.NewCorpusService(docs,
		extractors.NewDefaultRegistry(nil, 10*time.Second),
		features.New(nil, features.DefaultOptions()),
		nil, 0)
	search := services.NewSearchService(docs, domain.DefaultWeights(),
		domain.DefaultSearchThreshold, domain.DefaultSimilarThreshold, nil)
	documents := services.NewDocumentService(docs, corpus)

	cfg := domain.DefaultSchedulerConfig()
	cfg.CorpusDir = dir
	scheduler := services.NewScheduler(cfg, memory.NewSchedulerStore(), corpus, memory.NewDeviceStore(), nil)

	SetServices(&Services{
		Corpus:    corpus,
		Search:    search,
		Documents: documents,
		Scheduler: scheduler,
		Settings:  settings,
	})
	t.Cleanup(resetServices)

	return &testEnv{
		corpusDir: dir,
		docs:      docs,
		corpus:    corpus,
		search:    search,
		documents: documents,
		scheduler: scheduler,
		settings:  settings,
		config:    config,
	}
}

// resetServices clears the installed services.
func resetServices() {
	SetServices(nil)
	configured = false
}

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// processCorpus runs one processing pass over the test corpus.
func (e *testEnv) processCorpus(t *testing.T) {
	t.Helper()
	_, err := e.corpus.ProcessAll(t.Context(), e.corpusDir, domain.ProcessOptions{})
	require.NoError(t, err)
}

// documentID returns the ID of the document stored under filename.
func (e *testEnv) documentID(t *testing.T, filename string) string {
	t.Helper()
	doc, err := e.docs.GetByFilename(t.Context(), filename)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc.ID
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, t.Context(), args...)
}

// executeContext is execute with a caller supplied context.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests stay independent.
func resetFlags(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}
