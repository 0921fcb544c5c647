package status

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/connect/core"
)

const shutdownTimeout = 2 * time.Second

// Server exposes Metrics over HTTP at /metrics
// An empty address disables the endpoint
type Server struct {
	addr    string
	metrics *Metrics
	log     *slog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// NewServer creates a metrics endpoint on addr
func NewServer(addr string, m *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:    addr,
		metrics: m,
		log:     logger.With("service", "metrics"),
	}
}

// Name implements service.Service
func (s *Server) Name() string {
	return "metrics"
}

// Start implements service.Service
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addr == "" || s.srv != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.srv, s.listener = srv, ln

	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics endpoint stopped", "error", err)
		}
	})
	s.log.Info("metrics endpoint listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop implements service.Service
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.srv
	s.srv, s.listener = nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
