package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/server/middleware"
	"srs-hq/rulediff/pkg/telemetry"
	"srs-hq/rulediff/pkg/telemetry/health"
)

// Routes served by the API.
const (
	RouteRule    = "/rule"
	RouteCompare = "/compare"
)

// Deps are the collaborators of a Server.
type Deps struct {
	// Rules answers /rule. Usually the rule store.
	Rules lookup.Lookuper

	// Comparator answers /compare.
	Comparator *comparator.Service

	Telemetry *telemetry.Telemetry
}

// Server is the rulediff HTTP service.
type Server struct {
	config     *config.ServerConfig
	metricsCfg *config.MetricsConfig
	deps       Deps
	logger     *slog.Logger

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	running      bool
	addr         string
}

// New creates a server.
func New(cfg *config.ServerConfig, metricsCfg *config.MetricsConfig, deps Deps) *Server {
	return &Server{
		config:     cfg,
		metricsCfg: metricsCfg,
		deps:       deps,
		logger:     deps.Telemetry.Logger().With("component", "server"),
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(RouteRule, &ruleHandler{rules: s.deps.Rules})
	mux.Handle(RouteCompare, &compareHandler{
		comparator: s.deps.Comparator,
		maxMemory:  s.config.MaxBodyBytes,
	})

	tel := s.deps.Telemetry
	b := tel.Build()
	health.Register(mux, tel.Health(), b.Version, b.Commit, b.BuildTime)

	routes := []string{RouteRule, RouteCompare, "/health", "/ready", "/version"}
	if s.metricsCfg != nil && s.metricsCfg.Enabled {
		mux.Handle(s.metricsCfg.Path, tel.Metrics().Handler())
		routes = append(routes, s.metricsCfg.Path)
	}

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Tracing(tel.Tracer()),
		middleware.Logging,
		middleware.Metrics(tel.Metrics(), routes...),
		middleware.CORS(&s.config.CORS),
		middleware.BodyLimit(s.config.MaxBodyBytes),
	)
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		ln.Close()
		return fmt.Errorf("server is already running")
	}
	s.running = true
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", s.addr)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown stops the server within the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		srv := s.httpServer
		s.mu.RUnlock()
		if srv == nil {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())
		ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address once serving.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}
