package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
	"github.com/custodia-labs/juris/internal/similarity"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Suggestion limits.
const (
	minSuggestRunes       = 2
	maxDocumentSuggests   = 5
	maxKeywordSuggestDocs = 5
	maxSuggestions        = 10
)

// SearchService ranks processed documents by weighted TF-IDF similarity.
// It only reads from the store; scoring runs on a bounded worker pool.
type SearchService struct {
	docStore         driven.DocumentStore
	scorer           *similarity.Scorer
	metrics          driven.Metrics
	searchThreshold  float64
	similarThreshold float64
	workers          int
}

// NewSearchService creates a new search service.
func NewSearchService(
	docStore driven.DocumentStore,
	weights domain.Weights,
	searchThreshold, similarThreshold float64,
	metrics driven.Metrics,
) *SearchService {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	return &SearchService{
		docStore:         docStore,
		scorer:           similarity.NewScorer(weights),
		metrics:          metrics,
		searchThreshold:  searchThreshold,
		similarThreshold: similarThreshold,
		workers:          runtime.GOMAXPROCS(0),
	}
}

// Search ranks processed documents against query and returns one page.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveSearch(time.Since(start)) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	threshold := s.searchThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	page, pageSize := normalisePage(opts.Page, opts.PageSize)

	docs, err := s.docStore.ListProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	q := similarity.NewQuery(query)
	scores := make([]*domain.Scores, len(docs))
	err = s.scoreAll(ctx, docs, func(i int, content *domain.DocumentContent) {
		sc := s.scorer.Score(q, docs[i].Title(), content.Summary, content.RawText)
		if sc.Overall >= threshold {
			scores[i] = &sc
		}
	})
	if err != nil {
		return nil, err
	}

	// Collected in store order so the stable sort breaks ties by filename.
	results := []domain.SearchResult{}
	for i, sc := range scores {
		if sc != nil {
			results = append(results, domain.SearchResult{Document: docs[i], Scores: *sc})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Overall > results[j].Scores.Overall
	})

	pagination := domain.NewPagination(page, pageSize, len(results))
	from, to := pagination.Bounds()
	logger.Debug("search %q: %d of %d documents matched", query, len(results), len(docs))

	return &domain.SearchResponse{
		Query:      query,
		Threshold:  threshold,
		Results:    results[from:to],
		Pagination: pagination,
	}, nil
}

// Similar compares a processed document's text with every other processed document.
func (s *SearchService) Similar(ctx context.Context, documentID string, threshold *float64, limit int) ([]domain.SimilarDocument, error) {
	ref, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !ref.Processed || ref.Content == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoContent, documentID)
	}

	cutoff := s.similarThreshold
	if threshold != nil {
		cutoff = *threshold
	}
	if err := domain.ValidateThreshold(cutoff); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultSimilarLimit
	}

	docs, err := s.docStore.ListProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	refCounts := similarity.Count(ref.Content.RawText)
	sims := make([]float64, len(docs))
	keep := make([]bool, len(docs))
	err = s.scoreAll(ctx, docs, func(i int, content *domain.DocumentContent) {
		if docs[i].ID == ref.ID {
			return
		}
		sims[i] = similarity.Cosine(refCounts, similarity.Count(content.RawText))
		keep[i] = sims[i] >= cutoff
	})
	if err != nil {
		return nil, err
	}

	similar := []domain.SimilarDocument{}
	for i := range docs {
		if keep[i] {
			similar = append(similar, domain.SimilarDocument{Document: docs[i], Similarity: sims[i]})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool { return similar[i].Similarity > similar[j].Similarity })
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// Suggest returns filename matches followed by keyword matches.
func (s *SearchService) Suggest(ctx context.Context, prefix string) ([]domain.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < minSuggestRunes {
		return []domain.Suggestion{}, nil
	}
	needle := strings.ToLower(prefix)

	docs, err := s.docStore.ListProcessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	suggestions := []domain.Suggestion{}
	for _, doc := range docs {
		if len(suggestions) == maxDocumentSuggests {
			break
		}
		if strings.Contains(strings.ToLower(doc.Filename), needle) {
			suggestions = append(suggestions, domain.Suggestion{
				Text: doc.Filename, Type: domain.SuggestionDocument, DocumentID: doc.ID,
			})
		}
	}

	keywordDocs := 0
	for _, doc := range docs {
		if keywordDocs == maxKeywordSuggestDocs || len(suggestions) == maxSuggestions {
			break
		}
		if doc.Content == nil {
			continue
		}
		// At most one keyword per document.
		for _, kw := range doc.Content.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				suggestions = append(suggestions, domain.Suggestion{
					Text: kw, Type: domain.SuggestionKeyword, DocumentID: doc.ID,
				})
				keywordDocs++
				break
			}
		}
	}
	return suggestions, nil
}

// scoreAll calls score for each document with non-empty text on a bounded
// pool. score must only write to index i of its own result slices.
func (s *SearchService) scoreAll(ctx context.Context, docs []domain.Document, score func(i int, content *domain.DocumentContent)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.workers, 1))
	for i := range docs {
		content := docs[i].Content
		if content == nil || strings.TrimSpace(content.RawText) == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score(i, content)
			return nil
		})
	}
	return g.Wait()
}

// normalisePage applies page defaults and caps the page size.
func normalisePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return page, pageSize
}
