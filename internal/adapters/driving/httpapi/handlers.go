package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Health != nil {
		if err := s.svc.Health(r.Context()); err != nil {
			logger.L().Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	threshold, err := optionalFloat(q.Get("threshold"))
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := optionalInt(firstNonEmpty(q.Get("page_size"), q.Get("per_page")))
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.svc.Search.Search(r.Context(), q.Get("query"), domain.SearchOptions{
		Threshold: threshold,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponseJSON(resp))
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.svc.Search.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]suggestionJSON, len(suggestions))
	for i, sg := range suggestions {
		out[i] = suggestionJSON{Text: sg.Text, Type: string(sg.Type), DocumentID: sg.DocumentID}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := optionalInt(firstNonEmpty(q.Get("page_size"), q.Get("per_page")))
	if err != nil {
		writeError(w, err)
		return
	}
	processedOnly, _ := strconv.ParseBool(q.Get("processed"))

	result, err := s.svc.Documents.List(r.Context(), driving.ListOptions{
		ProcessedOnly: processedOnly,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	docs := make([]documentJSON, len(result.Documents))
	for i, d := range result.Documents {
		docs[i] = toDocumentJSON(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents":  docs,
		"pagination": toPaginationJSON(result.Pagination),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": toDocumentJSON(*doc)})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()

	threshold, err := optionalFloat(q.Get("threshold"))
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeError(w, err)
		return
	}

	ref, err := s.svc.Documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	similar, err := s.svc.Search.Similar(r.Context(), id, threshold, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]similarJSON, len(similar))
	for i, sd := range similar {
		out[i] = similarJSON{Document: toDocumentJSON(sd.Document), SimilarityPercentage: domain.Percent(sd.Similarity)}
	}
	effective := s.cfg.SimilarThreshold
	if threshold != nil {
		effective = *threshold
	}
	writeJSON(w, http.StatusOK, similarResponseJSON{
		ReferenceDocument:   toDocumentJSON(*ref),
		SimilarDocuments:    out,
		SimilarityThreshold: effective,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Documents.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": toStatsJSON(stats)})
}

func (s *Server) handleProcessDocuments(w http.ResponseWriter, r *http.Request) {
	// A dropped connection does not abort a run halfway through the corpus.
	ctx := context.WithoutCancel(r.Context())

	report, err := s.svc.Scheduler.TriggerDocumentProcessing(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processResponseJSON{
		Message:        "Document processing completed",
		ProcessedCount: report.Processed,
		ErrorCount:     report.Errors,
		SkippedCount:   report.Skipped,
	})
}

func (s *Server) handleSchedulerStatus(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Scheduler.Tasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := schedulerJSON{Running: s.svc.Scheduler.IsRunning(), Tasks: make([]taskJSON, len(tasks))}
	for i, t := range tasks {
		out.Tasks[i] = toTaskJSON(t)
		last, err := s.svc.Scheduler.History(r.Context(), t.ID, 1)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(last) == 1 {
			out.Tasks[i].LastResult = toRunJSON(last[0])
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoContent):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProcessingInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFolderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, messageJSON{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("writing response: %v", err)
	}
}

func optionalFloat(raw string) (*float64, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
	}
	return &v, nil
}

func optionalInt(raw string) (int, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidInput, raw)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
