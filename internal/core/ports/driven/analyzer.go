package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// LanguageAnalyzer performs linguistic analysis of text.
type LanguageAnalyzer interface {
	// Analyze segments text into sentences and extracts named entities
	// and noun phrases, each in document order.
	Analyze(ctx context.Context, text string) (*domain.Analysis, error)
}

// FeatureDeriver derives a summary, keywords and a word count from raw text.
type FeatureDeriver interface {
	// Derive never fails: analysis problems degrade to fallback values.
	Derive(ctx context.Context, rawText string) domain.ProcessingResult
}
