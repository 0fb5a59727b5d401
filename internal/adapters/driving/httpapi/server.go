// Package httpapi exposes search, the document catalogue and the admin
// processing trigger over HTTP using a chi router.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// readTimeout bounds every route except the admin trigger, which runs a
// full processing pass synchronously.
const readTimeout = 60 * time.Second

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowAllOrigins permits any CORS origin (development mode).
	AllowAllOrigins bool

	// SimilarThreshold is reported when a similar-documents request omits one.
	SimilarThreshold float64
}

// Services are the core services the handlers call.
type Services struct {
	Search    driving.SearchService
	Documents driving.DocumentService
	Scheduler driving.Scheduler

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Health reports storage health for /healthz when set.
	Health func(ctx context.Context) error
}

// Server is the HTTP front end.
type Server struct {
	cfg        Config
	svc        Services
	router     chi.Router
	httpServer *http.Server
}

// New creates a server and builds its routes.
func New(cfg Config, svc Services) *Server {
	if cfg.Addr == "" {
		cfg.Addr = domain.DefaultHTTPAddr
	}
	if cfg.SimilarThreshold == 0 {
		cfg.SimilarThreshold = domain.DefaultSimilarThreshold
	}
	s := &Server{cfg: cfg, svc: svc}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	if s.svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.svc.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(readTimeout))

		r.Get("/search", s.handleSearch)
		r.Get("/search/suggestions", s.handleSuggestions)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Get("/stats", s.handleStats)
			r.Get("/{id}", s.handleGetDocument)
			r.Get("/{id}/similar", s.handleSimilar)
		})

		r.Get("/admin/scheduler", s.handleSchedulerStatus)
	})

	r.Post("/admin/process-documents", s.handleProcessDocuments)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}

// requestLogger logs each request with zap once the response is written.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logger.L().Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}
