// Package server exposes the completion engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NikitaCOEUR/mcfcomplete/internal/embedded"
	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/logger"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Config configures the completion server.
type Config struct {
	Addr        string
	ReadTimeout time.Duration
	Engine      *engine.Engine
	Logger      *logger.Logger // nil = discard
}

// Server is the HTTP completion server.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	completer  *embedded.Completer
	log        *logger.Logger
	metrics    *metrics
	startTime  time.Time
}

// NewServer creates a new completion server.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	s := &Server{
		engine:    cfg.Engine,
		completer: embedded.NewCompleter(cfg.Engine),
		log:       log.Component("server"),
		startTime: time.Now(),
	}

	mux := http.NewServeMux()

	// Health + metrics
	mux.HandleFunc("GET /health", s.healthHandler)

	// Prometheus metrics with isolated registry
	registry := prometheus.NewRegistry()
	s.metrics = newMetrics(registry, cfg.Engine)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// REST API v1
	mux.HandleFunc("GET /api/v1/status", s.statusHandler)
	mux.HandleFunc("POST /api/v1/complete", s.instrument("complete", s.completeHandler))
	mux.HandleFunc("POST /api/v1/complete/document", s.instrument("complete_document", s.documentHandler))
	mux.HandleFunc("POST /api/v1/complete/embedded", s.instrument("complete_embedded", s.embeddedHandler))
	mux.HandleFunc("POST /api/v1/parse", s.instrument("parse", s.parseHandler))

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("completion server listening")
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info().Msg("completion server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
