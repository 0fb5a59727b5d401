package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// --- Mock implementations shared by service tests ---

// mockExtractor implements driven.TextExtractor from canned texts keyed by filename.
type mockExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	errs  map[string]error
	calls map[string]int
}

var _ driven.TextExtractor = (*mockExtractor)(nil)

func newMockExtractor(texts map[string]string) *mockExtractor {
	return &mockExtractor{
		texts: texts,
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (m *mockExtractor) Detect(path string) domain.FileKind {
	return domain.ParseFileKind(filepath.Ext(path))
}

func (m *mockExtractor) Extract(_ context.Context, path string, kind domain.FileKind) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := filepath.Base(path)
	m.calls[name]++
	if !kind.IsSupported() {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, kind)
	}
	if err := m.errs[name]; err != nil {
		return "", err
	}
	text := strings.TrimSpace(m.texts[name])
	if text == "" {
		return "", fmt.Errorf("%w: no text", domain.ErrExtractionFailed)
	}
	return text, nil
}

func (m *mockExtractor) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// mockMetrics implements driven.Metrics and records every observation.
type mockMetrics struct {
	mu          sync.Mutex
	runs        []domain.ProcessingReport
	searches    int
	deactivated int
}

var _ driven.Metrics = (*mockMetrics)(nil)

func (m *mockMetrics) ObserveProcessingRun(report domain.ProcessingReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, report)
}

func (m *mockMetrics) ObserveSearch(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
}

func (m *mockMetrics) AddDevicesDeactivated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deactivated += n
}

// failingDocStore wraps a DocumentStore and fails CompleteProcessing for chosen documents.
type failingDocStore struct {
	driven.DocumentStore
	failFor func(content *domain.DocumentContent) bool
}

func (f *failingDocStore) CompleteProcessing(ctx context.Context, content *domain.DocumentContent) error {
	if f.failFor(content) {
		return fmt.Errorf("disk full")
	}
	return f.DocumentStore.CompleteProcessing(ctx, content)
}

// mockProcessor implements driving.CorpusProcessor. When block is set each
// ProcessAll call signals started and waits for release.
type mockProcessor struct {
	mu      sync.Mutex
	calls   int
	folders []string
	report  domain.ProcessingReport
	err     error

	block   bool
	started chan struct{}
	release chan struct{}

	fileCalls []string
	fileForce []bool
}

var _ driving.CorpusProcessor = (*mockProcessor)(nil)

func newBlockingProcessor() *mockProcessor {
	return &mockProcessor{
		block:   true,
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
}

func (m *mockProcessor) ProcessAll(ctx context.Context, folder string, _ domain.ProcessOptions) (domain.ProcessingReport, error) {
	m.mu.Lock()
	m.calls++
	m.folders = append(m.folders, folder)
	report, err, block := m.report, m.err, m.block
	m.mu.Unlock()

	if block {
		m.started <- struct{}{}
		select {
		case <-m.release:
		case <-ctx.Done():
			return domain.ProcessingReport{}, ctx.Err()
		}
	}
	return report, err
}

func (m *mockProcessor) ProcessFile(_ context.Context, path string, force bool) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fileCalls = append(m.fileCalls, path)
	m.fileForce = append(m.fileForce, force)
	return &domain.Document{Filename: filepath.Base(path), FilePath: path, Processed: true}, nil
}

func (m *mockProcessor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func ptr[T any](v T) *T {
	return &v
}

// stallingAnalyzer implements driven.LanguageAnalyzer by blocking until released,
// ignoring its context.
type stallingAnalyzer struct {
	release chan struct{}
}

var _ driven.LanguageAnalyzer = (*stallingAnalyzer)(nil)

func (a *stallingAnalyzer) Analyze(_ context.Context, _ string) (*domain.Analysis, error) {
	<-a.release
	return &domain.Analysis{}, nil
}

// cancellingDeriver implements driven.FeatureDeriver and cancels the run mid-derivation.
type cancellingDeriver struct {
	cancel context.CancelFunc
}

var _ driven.FeatureDeriver = (*cancellingDeriver)(nil)

func (d *cancellingDeriver) Derive(_ context.Context, rawText string) domain.ProcessingResult {
	d.cancel()
	return domain.ProcessingResult{RawText: rawText, Summary: rawText, Keywords: []string{}}
}
