package server

import (
	"crypto/tls"
	"log/slog"
	"net"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS configures TLS settings for HTTPS. Ignored in FastCGI mode,
// where the front web server terminates TLS.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.tlsConfig = config
	}
}

// WithLogger sets a custom logger for server operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdown = timeout
	}
}

func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.maxHeaderBytes = n
	}
}

// WithFastCGI serves requests as a FastCGI responder instead of plain HTTP.
// Responses then carry a "Status:" line instead of an HTTP status line.
func WithFastCGI(enabled bool) Option {
	return func(s *Server) {
		s.fastCGI = enabled
	}
}

// WithListener serves on an existing listener instead of listening on the
// configured address. The listener is closed on shutdown.
func WithListener(ln net.Listener) Option {
	return func(s *Server) {
		s.listener = ln
	}
}
