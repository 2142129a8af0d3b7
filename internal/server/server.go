// Package server exposes the summarization pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"newsbrief/internal/config"
	"newsbrief/internal/domain"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 60 * time.Second
	// Image transcription and summarization are two sequential model calls.
	writeTimeout = 5 * time.Minute
	idleTimeout  = 120 * time.Second

	maxMultipartMemory = 8 << 20
)

// Summarizer runs one summary request end to end.
type Summarizer interface {
	Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResponse, error)
}

type Server struct {
	httpServer     *http.Server
	summarizer     Summarizer
	maxUploadBytes int64
	log            *slog.Logger
}

func New(cfg *config.Config, summarizer Summarizer, log *slog.Logger) *Server {
	s := &Server{
		summarizer:     summarizer,
		maxUploadBytes: cfg.MaxUploadBytes,
		log:            log,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return s
}

// Handler returns the routed handler wrapped in the access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/summarize", s.handleSummarize)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return withAccessLog(mux, s.log)
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start(ctx context.Context) error {
	s.log.InfoContext(ctx, "HTTP server is listening",
		"addr", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
