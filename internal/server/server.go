package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/biguint/internal/logging"
	"github.com/agbru/biguint/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the metrics of a Recorder over HTTP.
type Server struct {
	addr     string
	metrics  *metrics.Recorder
	logger   logging.Logger
	security SecurityConfig
}

// NewServer creates a metrics server listening on addr.
func NewServer(addr string, m *metrics.Recorder, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		addr:     addr,
		metrics:  m,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Handler returns the server's routes wrapped in its middlewares.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	return mux
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully. It returns nil after a clean
// shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("metrics server shutdown failed", err)
		return err
	}
	s.logger.Debug("metrics server stopped")
	return nil
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// metricsMiddleware tracks in-flight requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
