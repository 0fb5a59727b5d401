package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/services"
	"github.com/custodia-labs/juris/internal/extractors"
	"github.com/custodia-labs/juris/internal/features"
)

type testEnv struct {
	dir       string
	docs      *memory.DocumentStore
	scheduler *services.Scheduler
	server    *Server
}

// newTestEnv wires real services over memory stores and a temp corpus.
func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}

	docs := memory.NewDocumentStore()
	registry := extractors.NewDefaultRegistry(nil, time.Minute)
	corpus := services.NewCorpusService(docs, registry, features.New(nil, features.DefaultOptions()), nil, 0)

	cfg := domain.DefaultSchedulerConfig()
	cfg.CorpusDir = dir
	scheduler := services.NewScheduler(cfg, memory.NewSchedulerStore(), corpus, memory.NewDeviceStore(), nil)

	server := New(Config{}, Services{
		Search:    services.NewSearchService(docs, domain.DefaultWeights(), 0.1, 0.2, nil),
		Documents: services.NewDocumentService(docs, corpus),
		Scheduler: scheduler,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("juris_documents_processed_total 0\n"))
		}),
	})
	return &testEnv{dir: dir, docs: docs, scheduler: scheduler, server: server}
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func (e *testEnv) process(t *testing.T) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/admin/process-documents")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

var legalCorpus = map[string]string{
	"indemnity.txt": "The supplier shall indemnify the customer against all claims arising from negligence.",
	"lease.txt":     "The tenant shall pay rent monthly to the landlord.",
	"notes.bin":     "\x00\x01\x02 binary",
}

func TestProcessDocuments(t *testing.T) {
	env := newTestEnv(t, legalCorpus)

	rec := env.do(t, http.MethodPost, "/admin/process-documents")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[processResponseJSON](t, rec)
	assert.Equal(t, "Document processing completed", body.Message)
	assert.Equal(t, 2, body.ProcessedCount)
	assert.Equal(t, 1, body.ErrorCount)
	assert.Zero(t, body.SkippedCount)

	// A second run is a no-op for processed files.
	rec = env.do(t, http.MethodPost, "/admin/process-documents")
	body = decode[processResponseJSON](t, rec)
	assert.Zero(t, body.ProcessedCount)
	assert.Equal(t, 2, body.SkippedCount)
}

func TestProcessDocuments_FolderUnavailable(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, os.RemoveAll(env.dir))

	rec := env.do(t, http.MethodPost, "/admin/process-documents")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decode[messageJSON](t, rec).Message, "corpus folder unavailable")
}

// blockingScheduler holds TriggerDocumentProcessing until released.
type blockingScheduler struct {
	*services.Scheduler
	mu      sync.Mutex
	busy    bool
	started chan struct{}
	release chan struct{}
}

func (b *blockingScheduler) TriggerDocumentProcessing(context.Context) (domain.ProcessingReport, error) {
	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()
		return domain.ProcessingReport{}, domain.ErrProcessingInProgress
	}
	b.busy = true
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return domain.ProcessingReport{Processed: 1}, nil
}

func TestProcessDocuments_Conflict(t *testing.T) {
	sched := &blockingScheduler{started: make(chan struct{}, 1), release: make(chan struct{})}
	server := New(Config{}, Services{Scheduler: sched})

	done := make(chan int, 1)
	go func() {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/process-documents", nil))
		done <- rec.Code
	}()
	<-sched.started

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/process-documents", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(sched.release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/search?query=indemnify+negligence")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[searchResponseJSON](t, rec)

	assert.Equal(t, "indemnify negligence", body.Query)
	assert.Equal(t, 0.1, body.SimilarityThreshold)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "indemnity.txt", body.Results[0].Document.Filename)
	assert.Greater(t, body.Results[0].SimilarityScores.Overall, 10.0)
	assert.LessOrEqual(t, body.Results[0].SimilarityScores.Overall, 100.0)
	require.NotNil(t, body.Results[0].Document.Content)
	assert.Equal(t, 1, body.Pagination.Total)
	assert.Equal(t, 20, body.Pagination.PerPage)
}

func TestSearch_Pagination(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/search?query=shall&threshold=0&page=2&per_page=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[searchResponseJSON](t, rec)
	assert.Len(t, body.Results, 1)
	assert.Equal(t, 2, body.Pagination.Total)
	assert.True(t, body.Pagination.HasPrev)
	assert.False(t, body.Pagination.HasNext)
}

func TestSearch_BadRequest(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, target := range []string{
		"/search",
		"/search?query=%20",
		"/search?query=rent&threshold=abc",
		"/search?query=rent&threshold=1.5",
		"/search?query=rent&page=two",
	} {
		rec := env.do(t, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSuggestions(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/search/suggestions?q=lea")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Suggestions []suggestionJSON `json:"suggestions"`
	}](t, rec)
	require.NotEmpty(t, body.Suggestions)
	assert.Equal(t, suggestionJSON{Text: "lease.txt", Type: "document", DocumentID: body.Suggestions[0].DocumentID}, body.Suggestions[0])

	rec = env.do(t, http.MethodGet, "/search/suggestions?q=l")
	assert.JSONEq(t, `{"suggestions":[]}`, rec.Body.String())
}

func TestDocuments(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/documents")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Documents  []documentJSON `json:"documents"`
		Pagination paginationJSON `json:"pagination"`
	}](t, rec)
	require.Len(t, list.Documents, 3)
	assert.Equal(t, "indemnity.txt", list.Documents[0].Filename)
	assert.Equal(t, "unknown", list.Documents[2].FileType)
	assert.Nil(t, list.Documents[2].Content)

	rec = env.do(t, http.MethodGet, "/documents?processed=true")
	list = decode[struct {
		Documents  []documentJSON `json:"documents"`
		Pagination paginationJSON `json:"pagination"`
	}](t, rec)
	assert.Len(t, list.Documents, 2)

	id := list.Documents[0].ID
	rec = env.do(t, http.MethodGet, "/documents/"+id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"filename":"indemnity.txt"`)

	rec = env.do(t, http.MethodGet, "/documents/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentStats(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/documents/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Stats statsJSON `json:"stats"`
	}](t, rec)
	assert.Equal(t, 3, body.Stats.TotalDocuments)
	assert.Equal(t, 2, body.Stats.ProcessedDocuments)
	assert.InDelta(t, 66.67, body.Stats.ProcessingPercentage, 1e-9)
	assert.Equal(t, kindStatsJSON{Total: 2, Processed: 2}, body.Stats.DocumentsByType["txt"])
}

func TestSimilar(t *testing.T) {
	files := map[string]string{
		"a.txt": "The supplier shall indemnify the customer against claims.",
		"b.txt": "The customer shall indemnify the supplier against claims.",
		"c.txt": "Completely unrelated weather report.",
	}
	env := newTestEnv(t, files)
	env.process(t)

	doc, err := env.docs.GetByFilename(context.Background(), "a.txt")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/documents/"+doc.ID+"/similar")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[similarResponseJSON](t, rec)
	assert.Equal(t, "a.txt", body.ReferenceDocument.Filename)
	assert.Equal(t, 0.2, body.SimilarityThreshold)
	require.Len(t, body.SimilarDocuments, 1)
	assert.Equal(t, "b.txt", body.SimilarDocuments[0].Document.Filename)
	assert.Greater(t, body.SimilarDocuments[0].SimilarityPercentage, 50.0)

	rec = env.do(t, http.MethodGet, "/documents/"+doc.ID+"/similar?threshold=0&limit=5")
	body = decode[similarResponseJSON](t, rec)
	assert.Equal(t, 0.0, body.SimilarityThreshold)
	assert.Len(t, body.SimilarDocuments, 2)

	rec = env.do(t, http.MethodGet, "/documents/missing/similar")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimilar_Unprocessed(t *testing.T) {
	env := newTestEnv(t, map[string]string{"scan.bin": "\x00\x01"})
	env.process(t)

	doc, err := env.docs.GetByFilename(context.Background(), "scan.bin")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/documents/"+doc.ID+"/similar")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchedulerStatus(t *testing.T) {
	env := newTestEnv(t, legalCorpus)
	env.process(t)

	rec := env.do(t, http.MethodGet, "/admin/scheduler")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[schedulerJSON](t, rec)
	assert.False(t, body.Running)
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, domain.TaskIDDocumentProcessing, body.Tasks[0].ID)
	assert.NotNil(t, body.Tasks[0].LastSuccess)
	require.NotNil(t, body.Tasks[0].LastResult)
	assert.Equal(t, "manual", body.Tasks[0].LastResult.Trigger)
	assert.True(t, body.Tasks[0].LastResult.Success)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "juris_documents_processed_total"))

	unhealthy := New(Config{}, Services{Health: func(context.Context) error { return errors.New("db locked") }})
	rec = httptest.NewRecorder()
	unhealthy.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrNoContent, http.StatusNotFound},
		{domain.ErrProcessingInProgress, http.StatusConflict},
		{domain.ErrFolderUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
