package msdoc

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles legacy .doc files through a converter.
type Extractor struct {
	converter driven.LegacyDocConverter
}

// NewExtractor creates a .doc extractor. A nil converter behaves as Unavailable.
func NewExtractor(converter driven.LegacyDocConverter) *Extractor {
	if converter == nil {
		converter = Unavailable{}
	}
	return &Extractor{converter: converter}
}

// SupportedKinds returns the file kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.FileKind {
	return []domain.FileKind{domain.FileKindDOC}
}

// Extract converts the file at path to text.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	return e.converter.Convert(ctx, path)
}
