package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/fcgi"
	"sync"
	"time"

	"github.com/dmitrymomot/respkit/core/logger"
)

// Server serves an http.Handler either as a plain HTTP(S) server or as a
// FastCGI responder on the same listener. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	fastCGI        bool
	running        bool
}

// New creates a Server for addr. Defaults to a 30-second shutdown timeout
// and a no-op logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         logger.Nop(),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start serves handler and blocks until ctx is canceled or serving fails.
// On cancellation the server shuts down gracefully and Start returns the
// shutdown error, if any.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln := s.listener
	if ln == nil {
		if s.addr == "" {
			s.mu.Unlock()
			return ErrMissingAddress
		}
		var err error
		ln, err = net.Listen("tcp", s.addr)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrListen, err)
		}
	}

	s.listener = ln
	s.running = true
	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
	srv := s.server
	fastCGI := s.fastCGI
	hasTLS := s.tlsConfig != nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "starting server",
		logger.Component("server"),
		slog.String("addr", ln.Addr().String()),
		slog.Bool("fastcgi", fastCGI),
		slog.Bool("tls", hasTLS && !fastCGI),
	)

	errCh := make(chan error, 1)
	go func() {
		switch {
		case fastCGI:
			errCh <- fcgi.Serve(ln, handler)
		case hasTLS:
			errCh <- srv.ServeTLS(ln, "", "")
		default:
			errCh <- srv.Serve(ln)
		}
	}()

	select {
	case err := <-errCh:
		s.reset()
		if isClosed(err) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServe, err)
	case <-ctx.Done():
		stopErr := s.Stop()
		if err := <-errCh; err != nil && !isClosed(err) {
			s.logger.Error("server exited with error", logger.Component("server"), logger.Error(err))
		}
		return stopErr
	}
}

// Stop shuts the server down using the configured timeout.
// Returns immediately if the server is not running.
// In FastCGI mode the listener is closed and in-flight requests finish on their own.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	defer func() {
		s.running = false
		s.listener = nil
		s.server = nil
	}()

	s.logger.Info("shutting down server", logger.Component("server"), slog.Duration("timeout", s.shutdown))

	if s.fastCGI {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("%w: %w", ErrShutdown, err)
		}
		s.logger.Info("server shutdown complete", logger.Component("server"))
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	// Serve may not have tracked the listener yet.
	_ = s.listener.Close()
	if err != nil {
		s.logger.Error("server shutdown error", logger.Component("server"), logger.Error(err))
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}

	s.logger.Info("server shutdown complete", logger.Component("server"))
	return nil
}

// Running reports whether the server is currently serving.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) reset() {
	s.mu.Lock()
	s.running = false
	s.listener = nil
	s.server = nil
	s.mu.Unlock()
}

func isClosed(err error) bool {
	return err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed)
}

// Run creates a server with default settings and serves handler until ctx is canceled.
func Run(ctx context.Context, addr string, handler http.Handler, opts ...Option) error {
	return New(addr, opts...).Start(ctx, handler)
}
