package httpapi

import (
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

type contentJSON struct {
	DocumentID     string    `json:"document_id"`
	Summary        string    `json:"summary"`
	Keywords       []string  `json:"keywords"`
	WordCount      int       `json:"word_count"`
	ProcessingDate time.Time `json:"processing_date"`
}

type documentJSON struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	FileType  string       `json:"file_type"`
	FileSize  int64        `json:"file_size"`
	Processed bool         `json:"processed"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Content   *contentJSON `json:"content"`
}

type paginationJSON struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

type scoresJSON struct {
	Title   float64 `json:"title"`
	Summary float64 `json:"summary"`
	Content float64 `json:"content"`
	Overall float64 `json:"overall"`
}

type searchResultJSON struct {
	Document         documentJSON `json:"document"`
	SimilarityScores scoresJSON   `json:"similarity_scores"`
}

type searchResponseJSON struct {
	Results             []searchResultJSON `json:"results"`
	Pagination          paginationJSON     `json:"pagination"`
	Query               string             `json:"query"`
	SimilarityThreshold float64            `json:"similarity_threshold"`
}

type suggestionJSON struct {
	Text       string `json:"text"`
	Type       string `json:"type"`
	DocumentID string `json:"document_id"`
}

type similarJSON struct {
	Document             documentJSON `json:"document"`
	SimilarityPercentage float64      `json:"similarity_percentage"`
}

type similarResponseJSON struct {
	ReferenceDocument   documentJSON  `json:"reference_document"`
	SimilarDocuments    []similarJSON `json:"similar_documents"`
	SimilarityThreshold float64       `json:"similarity_threshold"`
}

type kindStatsJSON struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
}

type statsJSON struct {
	TotalDocuments       int                      `json:"total_documents"`
	ProcessedDocuments   int                      `json:"processed_documents"`
	ProcessingPercentage float64                  `json:"processing_percentage"`
	DocumentsByType      map[string]kindStatsJSON `json:"documents_by_type"`
}

type processResponseJSON struct {
	Message        string `json:"message"`
	ProcessedCount int    `json:"processed_count"`
	ErrorCount     int    `json:"error_count"`
	SkippedCount   int    `json:"skipped_count"`
}

type taskJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Interval    string     `json:"interval"`
	Enabled     bool       `json:"enabled"`
	LastRun     *time.Time `json:"last_run"`
	NextRun     *time.Time `json:"next_run"`
	LastSuccess *time.Time `json:"last_success"`
	LastError   string     `json:"last_error,omitempty"`
	LastResult  *runJSON   `json:"last_result,omitempty"`
}

type runJSON struct {
	Trigger        string    `json:"trigger"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	ItemsProcessed int       `json:"items_processed"`
	ItemsFailed    int       `json:"items_failed"`
}

type schedulerJSON struct {
	Running bool       `json:"running"`
	Tasks   []taskJSON `json:"tasks"`
}

type messageJSON struct {
	Message string `json:"message"`
}

func toDocumentJSON(doc domain.Document) documentJSON {
	out := documentJSON{
		ID:        doc.ID,
		Filename:  doc.Filename,
		FileType:  doc.Kind.String(),
		FileSize:  doc.Size,
		Processed: doc.Processed,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if c := doc.Content; c != nil {
		keywords := c.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		out.Content = &contentJSON{
			DocumentID:     c.DocumentID,
			Summary:        c.Summary,
			Keywords:       keywords,
			WordCount:      c.WordCount,
			ProcessingDate: c.ProcessedAt,
		}
	}
	return out
}

func toPaginationJSON(p domain.Pagination) paginationJSON {
	return paginationJSON{
		Page:    p.Page,
		PerPage: p.PageSize,
		Total:   p.Total,
		Pages:   p.Pages,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	}
}

func toSearchResponseJSON(resp *domain.SearchResponse) searchResponseJSON {
	results := make([]searchResultJSON, len(resp.Results))
	for i, r := range resp.Results {
		pct := r.Scores.Percentages()
		results[i] = searchResultJSON{
			Document: toDocumentJSON(r.Document),
			SimilarityScores: scoresJSON{
				Title:   pct.Title,
				Summary: pct.Summary,
				Content: pct.Content,
				Overall: pct.Overall,
			},
		}
	}
	return searchResponseJSON{
		Results:             results,
		Pagination:          toPaginationJSON(resp.Pagination),
		Query:               resp.Query,
		SimilarityThreshold: resp.Threshold,
	}
}

func toStatsJSON(stats *domain.DocumentStats) statsJSON {
	byType := make(map[string]kindStatsJSON, len(stats.ByKind))
	for kind, ks := range stats.ByKind {
		byType[kind.String()] = kindStatsJSON{Total: ks.Total, Processed: ks.Processed}
	}
	return statsJSON{
		TotalDocuments:       stats.Total,
		ProcessedDocuments:   stats.Processed,
		ProcessingPercentage: stats.ProcessedPercentage(),
		DocumentsByType:      byType,
	}
}

func toTaskJSON(t domain.ScheduledTask) taskJSON {
	return taskJSON{
		ID:          t.ID,
		Name:        t.Name,
		Interval:    t.Interval.String(),
		Enabled:     t.Enabled,
		LastRun:     optionalTime(t.LastRun),
		NextRun:     optionalTime(t.NextRun),
		LastSuccess: optionalTime(t.LastSuccess),
		LastError:   t.LastError,
	}
}

func toRunJSON(r domain.TaskResult) *runJSON {
	return &runJSON{
		Trigger:        string(r.Trigger),
		StartedAt:      r.StartedAt,
		EndedAt:        r.EndedAt,
		Success:        r.Success,
		Error:          r.Error,
		ItemsProcessed: r.ItemsProcessed,
		ItemsFailed:    r.ItemsFailed,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
