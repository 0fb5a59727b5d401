package extractors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/extractors/docx"
	"github.com/custodia-labs/juris/internal/extractors/msdoc"
	"github.com/custodia-labs/juris/internal/extractors/pdf"
	"github.com/custodia-labs/juris/internal/extractors/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// Registry maps file kinds to extractors and bounds each extraction by a timeout.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.FileKind]driven.Extractor
	timeout    time.Duration
}

// NewRegistry creates an empty registry. A non-positive timeout uses
// domain.DefaultExtractionTimeout.
func NewRegistry(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = domain.DefaultExtractionTimeout
	}
	return &Registry{
		extractors: make(map[domain.FileKind]driven.Extractor),
		timeout:    timeout,
	}
}

// NewDefaultRegistry registers the built-in extractors for every supported kind.
func NewDefaultRegistry(converter driven.LegacyDocConverter, timeout time.Duration) *Registry {
	r := NewRegistry(timeout)
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(msdoc.NewExtractor(converter))
	r.Register(plaintext.New())
	return r
}

// Register adds an extractor for each kind it supports, replacing any previous one.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range e.SupportedKinds() {
		r.extractors[kind] = e
	}
}

// Kinds returns the kinds with a registered extractor.
func (r *Registry) Kinds() []domain.FileKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var kinds []domain.FileKind
	for _, kind := range domain.AllFileKinds() {
		if _, ok := r.extractors[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Detect determines the kind of the file at path.
func (r *Registry) Detect(path string) domain.FileKind {
	return Detect(path)
}

type extraction struct {
	text string
	err  error
}

// Extract returns the trimmed text of the file at path.
func (r *Registry) Extract(ctx context.Context, path string, kind domain.FileKind) (string, error) {
	if !kind.IsSupported() {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, kind)
	}

	r.mu.RLock()
	e, ok := r.extractors[kind]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: no extractor for %s", domain.ErrUnsupportedType, kind)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Buffered so the goroutine can finish after a timeout.
	done := make(chan extraction, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- extraction{err: fmt.Errorf("%w: extractor panic: %v", domain.ErrExtractionFailed, p)}
			}
		}()
		text, err := e.Extract(ctx, path)
		done <- extraction{text: text, err: err}
	}()

	var res extraction
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s", domain.ErrExtractionFailed, r.timeout)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(res.err, domain.ErrExtractionFailed) || errors.Is(res.err, domain.ErrConverterUnavailable) {
			return "", res.err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, res.err)
	}

	text := strings.TrimSpace(res.text)
	if text == "" {
		return "", fmt.Errorf("%w: no text", domain.ErrExtractionFailed)
	}
	return text, nil
}
