package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/respkit/core/benchmark"
	"github.com/dmitrymomot/respkit/core/logger"
)

const (
	// DefaultContentType is the content type of a fresh Response.
	DefaultContentType = "text/html"
	// DefaultCharset is the charset of a fresh Response.
	DefaultCharset = "utf-8"
)

// Filter transforms the textual body before it is sent.
type Filter func(body string) string

// Response accumulates the state of one HTTP response and transmits it on Send.
// It is not safe for concurrent use.
type Response struct {
	req *Request

	body        Body
	contentType string
	charset     string
	status      int
	headers     map[string]string
	cookies     []Cookie
	filters     []Filter

	compress      bool
	compressLevel int
	cache         bool

	signer Signer
	logger *slog.Logger
	bench  *benchmark.Registry
	now    func() time.Time

	sent bool
}

// New creates a Response for req with an empty body, text/html and status 200.
func New(req *Request, opts ...Option) *Response {
	if req == nil {
		req = emptyRequest()
	}
	cfg := DefaultConfig()
	r := &Response{
		req:           req,
		body:          RawBody(""),
		contentType:   DefaultContentType,
		charset:       cfg.Charset,
		status:        200,
		headers:       make(map[string]string),
		compressLevel: cfg.CompressionLevel,
		logger:        logger.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetBody replaces the body. Another *Response contributes its body, a
// Container is sent by itself, anything else is rendered to text.
func (r *Response) SetBody(v any) *Response {
	switch b := v.(type) {
	case *Response:
		if b == nil {
			r.body = RawBody("")
		} else {
			r.body = b.body
		}
	case Body:
		r.body = b
	case Container:
		r.body = ContainerBody(b)
	default:
		r.body = RawBody(v)
	}
	return r
}

// SetJSON marshals v as the body and switches the content type to application/json.
func (r *Response) SetJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderBody, err)
	}
	r.SetBody(data).SetType("application/json")
	return nil
}

// SetType sets the content type and, when given, the charset.
func (r *Response) SetType(contentType string, charset ...string) *Response {
	r.contentType = contentType
	if len(charset) > 0 {
		r.charset = charset[0]
	}
	return r
}

// SetCharset sets the charset appended to textual content types.
func (r *Response) SetCharset(charset string) *Response {
	r.charset = charset
	return r
}

// SetStatus sets the status code. Codes missing from the status table are ignored.
func (r *Response) SetStatus(code int) *Response {
	if _, ok := StatusText(code); ok {
		r.status = code
	}
	return r
}

// AddHeader sets a header. Names are case-insensitive; the last write wins.
func (r *Response) AddHeader(name, value string) *Response {
	r.headers[strings.ToLower(name)] = value
	return r
}

// ClearHeaders drops every accumulated header.
func (r *Response) ClearHeaders() *Response {
	clear(r.headers)
	return r
}

// AddCookie appends a cookie. A zero ttl makes a session cookie; otherwise
// the cookie expires ttl from now.
func (r *Response) AddCookie(name, value string, ttl time.Duration, opts ...CookieOption) *Response {
	r.cookies = append(r.cookies, newCookie(name, value, ttl, r.now(), opts))
	return r
}

// AddSignedCookie appends a cookie whose value is signed by the configured Signer.
// Nothing is appended when signing fails.
func (r *Response) AddSignedCookie(name, value string, ttl time.Duration, opts ...CookieOption) error {
	if r.signer == nil {
		return ErrNoSigner
	}
	signed, err := r.signer.Sign(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	r.AddCookie(name, signed, ttl, opts...)
	return nil
}

// DeleteCookie appends an empty cookie that has already expired.
func (r *Response) DeleteCookie(name string, opts ...CookieOption) *Response {
	return r.AddCookie(name, "", -time.Hour, opts...)
}

// ClearCookies drops every accumulated cookie.
func (r *Response) ClearCookies() *Response {
	r.cookies = nil
	return r
}

// AddOutputFilter registers a filter. Filters run in registration order.
func (r *Response) AddOutputFilter(f Filter) *Response {
	if f != nil {
		r.filters = append(r.filters, f)
	}
	return r
}

// ClearOutputFilters drops every registered filter.
func (r *Response) ClearOutputFilters() *Response {
	r.filters = nil
	return r
}

// EnableCache turns on ETag generation and If-None-Match handling.
func (r *Response) EnableCache() *Response {
	r.cache = true
	return r
}

// DisableCache turns off ETag generation.
func (r *Response) DisableCache() *Response {
	r.cache = false
	return r
}

// EnableCompression gzips the body for clients that accept it.
func (r *Response) EnableCompression() *Response {
	r.compress = true
	return r
}

// DisableCompression sends the body uncompressed.
func (r *Response) DisableCompression() *Response {
	r.compress = false
	return r
}

// Redirect replaces the body with a redirect to location.
func (r *Response) Redirect(location string, opts ...RedirectOption) *Response {
	return r.SetBody(Redirect(location, opts...))
}

// Back replaces the body with a redirect to the referring page.
func (r *Response) Back(opts ...RedirectOption) *Response {
	return r.SetBody(Back(opts...))
}

// Body returns the response body.
func (r *Response) Body() Body { return r.body }

// Type returns the content type without the charset.
func (r *Response) Type() string { return r.contentType }

// Charset returns the charset appended to textual content types.
func (r *Response) Charset() string { return r.charset }

// Status returns the status code.
func (r *Response) Status() int { return r.status }

// Request returns the request the response answers.
func (r *Response) Request() *Request { return r.req }

// Filters returns a copy of the output filters in application order.
func (r *Response) Filters() []Filter { return slices.Clone(r.filters) }

// Cookies returns a copy of the accumulated cookies.
func (r *Response) Cookies() []Cookie { return slices.Clone(r.cookies) }

// CacheEnabled reports whether ETag handling is on.
func (r *Response) CacheEnabled() bool { return r.cache }

// Sent reports whether Send has run.
func (r *Response) Sent() bool { return r.sent }

// CompressionEnabled reports whether gzip output is on.
func (r *Response) CompressionEnabled() bool { return r.compress }

// Headers returns a copy of the accumulated headers keyed by lower-cased name.
func (r *Response) Headers() map[string]string {
	return maps.Clone(r.headers)
}

// Header returns an accumulated header value.
func (r *Response) Header(name string) (string, bool) {
	v, ok := r.headers[strings.ToLower(name)]
	return v, ok
}
