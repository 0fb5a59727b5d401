// Package plaintext extracts text from plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the file kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FileKind {
	return []domain.FileKind{domain.FileKindTXT}
}

// Extract reads the file as UTF-8, falling back to ISO-8859-1 when the
// bytes are not valid UTF-8.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read text file: %v", domain.ErrExtractionFailed, err)
	}
	text, err := Decode(data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Decode converts data to a string, trying UTF-8 then Latin-1.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode latin-1: %v", domain.ErrExtractionFailed, err)
	}
	return string(decoded), nil
}
