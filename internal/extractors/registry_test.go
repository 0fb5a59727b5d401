package extractors

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/extractors/msdoc"
)

// stubExtractor is a configurable test double for driven.Extractor.
type stubExtractor struct {
	kinds []domain.FileKind
	text  string
	err   error
	delay time.Duration
	panic bool
}

var _ driven.Extractor = (*stubExtractor)(nil)

func (s *stubExtractor) SupportedKinds() []domain.FileKind { return s.kinds }

func (s *stubExtractor) Extract(ctx context.Context, _ string) (string, error) {
	if s.panic {
		panic("corrupt stream")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func TestRegistry_Extract_Success(t *testing.T) {
	r := NewRegistry(time.Second)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindTXT}, text: "  text body \n"})

	text, err := r.Extract(context.Background(), "/corpus/a.txt", domain.FileKindTXT)

	require.NoError(t, err)
	assert.Equal(t, "text body", text)
}

func TestRegistry_Extract_UnknownKind(t *testing.T) {
	r := NewRegistry(time.Second)

	_, err := r.Extract(context.Background(), "/corpus/a.odt", domain.FileKindUnknown)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Extract_NoExtractorRegistered(t *testing.T) {
	r := NewRegistry(time.Second)

	_, err := r.Extract(context.Background(), "/corpus/a.pdf", domain.FileKindPDF)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Extract_EmptyTextIsFailure(t *testing.T) {
	r := NewRegistry(time.Second)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindPDF}, text: " \n\t"})

	_, err := r.Extract(context.Background(), "/corpus/scan.pdf", domain.FileKindPDF)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestRegistry_Extract_ErrorWrapped(t *testing.T) {
	r := NewRegistry(time.Second)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindDOCX}, err: errors.New("zip: not a valid zip file")})

	_, err := r.Extract(context.Background(), "/corpus/a.docx", domain.FileKindDOCX)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "not a valid zip file")
}

func TestRegistry_Extract_PanicRecovered(t *testing.T) {
	r := NewRegistry(time.Second)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindPDF}, panic: true})

	_, err := r.Extract(context.Background(), "/corpus/a.pdf", domain.FileKindPDF)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "panic")
}

func TestRegistry_Extract_Timeout(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindPDF}, text: "late", delay: time.Second})

	start := time.Now()
	_, err := r.Extract(context.Background(), "/corpus/huge.pdf", domain.FileKindPDF)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRegistry_Extract_ConverterUnavailable(t *testing.T) {
	r := NewDefaultRegistry(msdoc.Unavailable{}, time.Second)

	_, err := r.Extract(context.Background(), "/corpus/old.doc", domain.FileKindDOC)

	assert.ErrorIs(t, err, domain.ErrConverterUnavailable)
}

func TestRegistry_Register_ReplacesExisting(t *testing.T) {
	r := NewRegistry(time.Second)
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindTXT}, text: "first"})
	r.Register(&stubExtractor{kinds: []domain.FileKind{domain.FileKindTXT}, text: "second"})

	text, err := r.Extract(context.Background(), "/corpus/a.txt", domain.FileKindTXT)

	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestNewDefaultRegistry_Kinds(t *testing.T) {
	r := NewDefaultRegistry(nil, 0)

	assert.Equal(t, domain.AllFileKinds(), r.Kinds())
	assert.Equal(t, domain.DefaultExtractionTimeout, r.timeout)
}

func TestNewDefaultRegistry_ExtractsText(t *testing.T) {
	path := writeFile(t, "note.txt", []byte("Order of the court.\n"))
	r := NewDefaultRegistry(nil, time.Second)

	kind := r.Detect(path)
	require.Equal(t, domain.FileKindTXT, kind)

	text, err := r.Extract(context.Background(), path, kind)
	require.NoError(t, err)
	assert.Equal(t, "Order of the court.", text)
}

func TestRegistry_Extract_MissingFile(t *testing.T) {
	r := NewDefaultRegistry(nil, time.Second)

	_, err := r.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.docx"), domain.FileKindDOCX)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
