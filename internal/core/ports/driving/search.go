package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks processed documents against query by weighted similarity.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Similar returns documents whose text resembles the given document.
	// A nil threshold applies the configured default.
	Similar(ctx context.Context, documentID string, threshold *float64, limit int) ([]domain.SimilarDocument, error)

	// Suggest returns filename and keyword completions for a partial query.
	Suggest(ctx context.Context, prefix string) ([]domain.Suggestion, error)
}
