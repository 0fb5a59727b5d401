package similarity

import (
	"github.com/custodia-labs/juris/internal/core/domain"
)

// Scorer computes weighted query scores against document fields.
type Scorer struct {
	weights domain.Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights domain.Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the configured weights.
func (s *Scorer) Weights() domain.Weights {
	return s.weights
}

// Query is a tokenized search query reused across documents.
type Query struct {
	text   string
	counts TermCounts
}

// NewQuery tokenizes query once.
func NewQuery(query string) *Query {
	return &Query{text: query, counts: Count(query)}
}

// Text returns the query as given.
func (q *Query) Text() string {
	return q.text
}

// Score compares the query against title, summary and content.
func (s *Scorer) Score(q *Query, title, summary, content string) domain.Scores {
	scores := domain.Scores{
		Title:   q.against(title),
		Summary: q.against(summary),
		Content: q.against(content),
	}
	scores.Overall = s.Combine(scores)
	return scores
}

// Combine returns the weighted overall score of per-field scores.
func (s *Scorer) Combine(scores domain.Scores) float64 {
	return s.weights.Title*scores.Title +
		s.weights.Summary*scores.Summary +
		s.weights.Content*scores.Content
}

func (q *Query) against(text string) float64 {
	if len(q.counts) == 0 || text == "" {
		return 0
	}
	return Cosine(q.counts, Count(text))
}
