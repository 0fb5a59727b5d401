// Package pdf extracts text from PDF documents using a pure Go parser.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the file kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FileKind {
	return []domain.FileKind{domain.FileKindPDF}
}

// Extract returns the plain text of every page joined by newlines.
// The parser panics on some malformed files; panics are returned as errors.
func (e *Extractor) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: pdf parser panic: %v", domain.ErrExtractionFailed, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", domain.ErrExtractionFailed, err)
	}
	defer f.Close()

	return extractPages(ctx, ledongthucPages{reader})
}

// pageSource abstracts page access for testing.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

type ledongthucPages struct {
	r *pdf.Reader
}

func (p ledongthucPages) NumPage() int {
	return p.r.NumPage()
}

func (p ledongthucPages) PageText(i int) (string, error) {
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// extractPages collects page texts. A page that fails is skipped so one
// broken page does not lose the rest of the document.
func extractPages(ctx context.Context, src pageSource) (string, error) {
	pages := src.NumPage()
	if pages <= 0 {
		return "", fmt.Errorf("%w: pdf has no pages", domain.ErrExtractionFailed)
	}

	texts := make([]string, 0, pages)
	var lastErr error
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(src, i)
		if err != nil {
			logger.Debug("PDF page %d skipped: %v", i, err)
			lastErr = err
			continue
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 && lastErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastErr)
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}

func pageText(src pageSource, i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d panic: %v", i, r)
		}
	}()
	return src.PageText(i)
}
