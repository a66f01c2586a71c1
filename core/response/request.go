package response

import (
	"context"
	"net/http"
	"net/http/fcgi"
	"net/url"
	"strings"
)

// Server variable names read by the response pipeline.
const (
	ServerProtocol      = "SERVER_PROTOCOL"
	ServerFastCGI       = "FCGI_SERVER_VERSION"
	ServerRequestURI    = "REQUEST_URI"
	ServerRequestMethod = "REQUEST_METHOD"
	ServerRemoteAddr    = "REMOTE_ADDR"
	ServerName          = "SERVER_NAME"
	ServerHTTPS         = "HTTPS"
)

// Request is a read-only view of the inbound request: its headers and a
// CGI-style table of server variables.
type Request struct {
	r   *http.Request
	env map[string]string
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithServerVar sets a server variable, overriding anything derived from the request.
func WithServerVar(key, value string) RequestOption {
	return func(r *Request) {
		r.env[key] = value
	}
}

// NewRequest wraps r. Server variables are derived from the request line,
// the connection and the headers (as HTTP_* entries); requests served over
// FastCGI also carry the variables passed by the web server.
func NewRequest(r *http.Request, opts ...RequestOption) *Request {
	req := &Request{
		r:   r,
		env: serverVars(r),
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// emptyRequest stands in for a missing request: GET / over HTTP/1.1.
func emptyRequest() *Request {
	r := &http.Request{
		Method:     http.MethodGet,
		URL:        &url.URL{Path: "/"},
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		RequestURI: "/",
	}
	return &Request{
		r:   r,
		env: make(map[string]string),
	}
}

func serverVars(r *http.Request) map[string]string {
	env := make(map[string]string, len(r.Header)+8)

	if r.Proto != "" {
		env[ServerProtocol] = r.Proto
	}
	env[ServerRequestMethod] = r.Method
	if r.RequestURI != "" {
		env[ServerRequestURI] = r.RequestURI
	} else if r.URL != nil {
		env[ServerRequestURI] = r.URL.RequestURI()
	}
	if r.RemoteAddr != "" {
		env[ServerRemoteAddr] = r.RemoteAddr
	}
	if r.Host != "" {
		env[ServerName] = r.Host
	}
	if r.TLS != nil {
		env[ServerHTTPS] = "on"
	}

	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		env[key] = strings.Join(values, ", ")
	}

	// fcgi.ProcessEnv is empty for anything not served by net/http/fcgi.
	if fcgiEnv := fcgi.ProcessEnv(r); len(fcgiEnv) > 0 {
		for k, v := range fcgiEnv {
			env[k] = v
		}
		if _, ok := env[ServerFastCGI]; !ok {
			env[ServerFastCGI] = "1"
		}
	}

	return env
}

// Header returns the first value of the named inbound header. Lookup is case-insensitive.
func (r *Request) Header(name string) (string, bool) {
	values := r.r.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Server returns the server variable key, or def when it isn't set.
func (r *Request) Server(key, def string) string {
	if v, ok := r.env[key]; ok {
		return v
	}
	return def
}

// LookupServer returns the server variable key and whether it is set.
func (r *Request) LookupServer(key string) (string, bool) {
	v, ok := r.env[key]
	return v, ok
}

// Referer returns the Referer header, or an empty string.
func (r *Request) Referer() string {
	return r.r.Referer()
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.r.Context()
}

// HTTP returns the wrapped *http.Request.
func (r *Request) HTTP() *http.Request {
	return r.r
}
