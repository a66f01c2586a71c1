package response

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/respkit/core/benchmark"
)

// Signer produces tamper-evident cookie values.
type Signer interface {
	Sign(value string) (string, error)
}

// Option configures a Response at construction time.
type Option func(*Response)

// WithConfig applies process-wide defaults.
func WithConfig(cfg Config) Option {
	return func(r *Response) {
		r.compress = cfg.CompressOutput
		r.cache = cfg.Cache
		if cfg.Charset != "" {
			r.charset = cfg.Charset
		}
		if cfg.CompressionLevel != 0 {
			r.compressLevel = cfg.CompressionLevel
		}
	}
}

// WithSigner sets the signer used by AddSignedCookie.
func WithSigner(s Signer) Option {
	return func(r *Response) {
		r.signer = s
	}
}

// WithLogger sets the logger used for send diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Response) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBenchmark records pipeline stage timings in reg.
func WithBenchmark(reg *benchmark.Registry) Option {
	return func(r *Response) {
		r.bench = reg
	}
}

// WithClock overrides the time source used for cookie expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Response) {
		if now != nil {
			r.now = now
		}
	}
}
