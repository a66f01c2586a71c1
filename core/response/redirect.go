package response

import (
	"net/http"
	"net/url"
	"strings"
)

// HTMX request and response headers.
const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXLocation = "HX-Location"
)

type redirect struct {
	location string
	back     bool
	status   int
	query    url.Values
}

// RedirectOption configures a redirect.
type RedirectOption func(*redirect)

// WithRedirectStatus sets the redirect status. Codes outside 3xx fall back to 302.
func WithRedirectStatus(code int) RedirectOption {
	return func(rd *redirect) {
		rd.status = code
	}
}

// WithQuery merges params into the target's query string.
func WithQuery(params url.Values) RedirectOption {
	return func(rd *redirect) {
		for k, vs := range params {
			rd.query[k] = append(rd.query[k], vs...)
		}
	}
}

// WithQueryParam adds a single query parameter to the target.
func WithQueryParam(key, value string) RedirectOption {
	return func(rd *redirect) {
		rd.query.Add(key, value)
	}
}

// Redirect sends the client to location with 302 Found by default.
// HTMX requests get an HX-Location header with 200 OK instead.
func Redirect(location string, opts ...RedirectOption) Container {
	return newRedirect(location, false, opts)
}

// Back redirects to the referring page, or to "/" without a Referer.
func Back(opts ...RedirectOption) Container {
	return newRedirect("", true, opts)
}

func newRedirect(location string, back bool, opts []RedirectOption) *redirect {
	rd := &redirect{
		location: location,
		back:     back,
		status:   http.StatusFound,
		query:    make(url.Values),
	}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.status < 300 || rd.status >= 400 {
		rd.status = http.StatusFound
	}
	return rd
}

func (rd *redirect) Emit(w http.ResponseWriter, req *Request, resp *Response) error {
	resp.WriteMeta(w)
	target := rd.target(req)

	if v, _ := req.Header(HeaderHXRequest); v == "true" {
		w.Header().Set(HeaderHXLocation, target)
		w.WriteHeader(http.StatusOK)
		return nil
	}

	http.Redirect(w, req.HTTP(), target, rd.status)
	return nil
}

func (rd *redirect) target(req *Request) string {
	location := rd.location
	if rd.back {
		location = req.Referer()
		if location == "" {
			location = "/"
		}
	}
	if len(rd.query) == 0 {
		return location
	}

	u, err := url.Parse(location)
	if err != nil {
		sep := "?"
		if strings.Contains(location, "?") {
			sep = "&"
		}
		return location + sep + rd.query.Encode()
	}
	q := u.Query()
	for k, vs := range rd.query {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}
