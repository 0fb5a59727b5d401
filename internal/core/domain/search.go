package domain

import "math"

// Search defaults.
const (
	DefaultSearchThreshold  = 0.1
	DefaultSimilarThreshold = 0.2
	DefaultSimilarLimit     = 10
	DefaultPageSize         = 20
	MaxPageSize             = 100
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Threshold is the minimum overall score in [0,1].
	// Nil applies the configured default.
	Threshold *float64

	// Page is the 1-based result page.
	Page int

	// PageSize is the number of results per page.
	PageSize int
}

// Scores holds per-field similarity scores in [0,1].
type Scores struct {
	Title   float64
	Summary float64
	Content float64
	Overall float64
}

// Percentages converts scores to percentages rounded to 2 decimals.
func (s Scores) Percentages() Scores {
	return Scores{
		Title:   Percent(s.Title),
		Summary: Percent(s.Summary),
		Content: Percent(s.Content),
		Overall: Percent(s.Overall),
	}
}

// SearchResult represents a single ranked document.
type SearchResult struct {
	// Document is the matched document including content.
	Document Document

	// Scores holds the raw similarity scores.
	Scores Scores
}

// Pagination describes the page of results returned.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
	Pages    int
	HasNext  bool
	HasPrev  bool
}

// NewPagination computes page bounds for total items.
func NewPagination(page, pageSize, total int) Pagination {
	pages := 0
	if pageSize > 0 {
		pages = total / pageSize
		if total%pageSize != 0 {
			pages++
		}
	}
	return Pagination{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
		HasNext:  page < pages,
		HasPrev:  page > 1,
	}
}

// Bounds returns the slice indices of the page within total items.
// Pages past the end are empty.
func (p Pagination) Bounds() (start, end int) {
	if p.Page < 1 || p.PageSize < 1 {
		return 0, 0
	}
	// Compared by division so huge page numbers cannot overflow.
	if p.Page-1 > p.Total/p.PageSize {
		return p.Total, p.Total
	}
	start = min((p.Page-1)*p.PageSize, p.Total)
	return start, start + min(p.PageSize, p.Total-start)
}

// SearchResponse is a page of ranked results.
type SearchResponse struct {
	Query      string
	Threshold  float64
	Results    []SearchResult
	Pagination Pagination
}

// SimilarDocument is a document related to a reference document.
type SimilarDocument struct {
	Document   Document
	Similarity float64
}

// SuggestionType identifies where a suggestion came from.
type SuggestionType string

// Suggestion types.
const (
	SuggestionDocument SuggestionType = "document"
	SuggestionKeyword  SuggestionType = "keyword"
)

// Suggestion is a query completion candidate.
type Suggestion struct {
	Text       string
	Type       SuggestionType
	DocumentID string
}

// Percent scales a score in [0,1] to a percentage rounded to 2 decimals.
func Percent(score float64) float64 {
	return roundTo(score*100, 2)
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
