package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/logging"
)

// Config configures the API server.
type Config struct {
	Addr    string
	Auth    *AuthConfig         // nil = no authentication
	Metrics prometheus.Gatherer // nil = no /metrics endpoint
	Store   *configstore.Store
	Logs    *logging.Buffer // nil = log endpoints answer 503
}

// Server is the HTTP API server. Every handler only reads state that is
// safe to share with the shell goroutine.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	store      *configstore.Store
	logs       *logging.Buffer
	startTime  time.Time
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	s := &Server{
		store:     cfg.Store,
		logs:      cfg.Logs,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()

	// Health + metrics
	mux.HandleFunc("GET /health", s.healthHandler)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("GET /api/v1/status", s.statusHandler)

	// Saved configuration
	mux.HandleFunc("GET /api/v1/config/startup", s.startupConfigHandler)
	mux.HandleFunc("GET /api/v1/config/history", s.configHistoryHandler)
	mux.HandleFunc("GET /api/v1/config/history/{n}", s.configSnapshotHandler)

	// Logs
	mux.HandleFunc("GET /api/v1/logs", s.logsHandler)
	mux.HandleFunc("GET /api/v1/logs/stream", s.logStreamHandler)

	var handler http.Handler = mux
	if cfg.Auth != nil {
		handler = authMiddleware(*cfg.Auth, mux)
	}
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, including authentication.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
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
	return s.httpServer.Shutdown(shutdownCtx)
}
