package handler

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/respkit/core/response"
)

// Config holds handler settings read from the environment.
type Config struct {
	Response             response.Config
	RequestIDHeader      string        `env:"HANDLER_REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	TrustRequestID       bool          `env:"HANDLER_TRUST_REQUEST_ID" envDefault:"false"`
	SlowRequestThreshold time.Duration `env:"HANDLER_SLOW_REQUEST_THRESHOLD" envDefault:"5s"`
}

// ErrorHandler fills resp, a fresh response, to answer err.
type ErrorHandler func(req *response.Request, resp *response.Response, err error)

// Option configures a handler.
type Option func(*handler)

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return func(h *handler) {
		h.respConfig = cfg.Response
		if cfg.RequestIDHeader != "" {
			h.requestIDHeader = cfg.RequestIDHeader
		}
		h.trustRequestID = cfg.TrustRequestID
		if cfg.SlowRequestThreshold > 0 {
			h.slowThreshold = cfg.SlowRequestThreshold
		}
	}
}

// WithResponseConfig sets the defaults of every response.
func WithResponseConfig(cfg response.Config) Option {
	return func(h *handler) {
		h.respConfig = cfg
	}
}

// WithSigner enables signed cookies.
func WithSigner(s response.Signer) Option {
	return func(h *handler) {
		h.signer = s
	}
}

// WithLogger sets the logger for request and response logs.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithErrorHandler replaces the default error rendering.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(h *handler) {
		if fn != nil {
			h.errorHandler = fn
		}
	}
}

// WithRequestIDGenerator replaces the UUID v4 generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(h *handler) {
		if fn != nil {
			h.newRequestID = fn
		}
	}
}

// WithRequestOptions passes options to every response.Request.
func WithRequestOptions(opts ...response.RequestOption) Option {
	return func(h *handler) {
		h.requestOpts = append(h.requestOpts, opts...)
	}
}

func defaultRequestID() string {
	return uuid.New().String()
}
