// Package server provides the BizHub HTTP server: the directory REST API,
// the assistant chat websocket and the completion proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bizhubhq/bizhub/internal/config"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/models"
	"github.com/bizhubhq/bizhub/internal/service"
	"github.com/bizhubhq/bizhub/internal/tools"
)

// ImageStore serves stored listing photos.
type ImageStore interface {
	GetImage(ctx context.Context, bucket, path string) (*models.Image, error)
}

// Deps are the collaborators the server needs. Completer may be nil when the
// server runs proxy-only (the browser talks to the proxy directly and no
// server-side chat is wanted).
type Deps struct {
	Listings  *service.ListingService
	Directory *service.DirectoryService
	Images    ImageStore
	Finder    tools.Finder
	Completer llm.Completer
	Collector *metrics.Collector
}

// Server is the BizHub HTTP server.
type Server struct {
	cfg    config.Config
	deps   Deps
	logger *slog.Logger
	http   *http.Server
}

// New creates a server. Routes are registered immediately; call Run to serve.
func New(cfg config.Config, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
	}

	s.http = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      LoggingMiddleware(logger)(s.routes()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // Long for LLM responses
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// The completion proxy handles its own method dispatch and CORS.
	mux.HandleFunc("/functions/gemini", s.handleGeminiProxy)

	mux.HandleFunc("POST /api/listings", s.handleCreateListing)
	mux.HandleFunc("GET /api/businesses", s.handleSearchBusinesses)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /files/{bucket}/{path...}", s.handleFile)

	mux.HandleFunc("GET /ws/chat", s.handleChat)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("GET /stats", s.handleStats)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", "url", fmt.Sprintf("http://localhost:%s/", s.cfg.ServerPort))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
