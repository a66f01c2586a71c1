package response

import (
	"net/http"
	"net/url"
	"time"
)

// Cookie is a Set-Cookie directive accumulated on a Response.
type Cookie struct {
	Name  string
	Value string
	// Expires is an absolute unix timestamp in seconds; 0 makes a session cookie.
	Expires  int64
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// CookieOption overrides a cookie default.
type CookieOption func(*Cookie)

// WithPath sets the cookie path attribute.
func WithPath(path string) CookieOption {
	return func(c *Cookie) {
		c.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) CookieOption {
	return func(c *Cookie) {
		c.Domain = domain
	}
}

// WithSecure restricts the cookie to HTTPS.
func WithSecure(secure bool) CookieOption {
	return func(c *Cookie) {
		c.Secure = secure
	}
}

// WithHTTPOnly hides the cookie from JavaScript.
func WithHTTPOnly(httpOnly bool) CookieOption {
	return func(c *Cookie) {
		c.HTTPOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute. The zero value omits it.
func WithSameSite(sameSite http.SameSite) CookieOption {
	return func(c *Cookie) {
		c.SameSite = sameSite
	}
}

func newCookie(name, value string, ttl time.Duration, now time.Time, opts []CookieOption) Cookie {
	c := Cookie{
		Name:  name,
		Value: value,
		Path:  "/",
	}
	if ttl != 0 {
		c.Expires = now.Add(ttl).Unix()
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// HTTPCookie converts c to a *http.Cookie. The value is query-escaped so
// that bytes a cookie cannot carry survive the trip; read it back with
// url.QueryUnescape.
func (c Cookie) HTTPCookie() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    url.QueryEscape(c.Value),
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
		SameSite: c.SameSite,
	}
	if c.Expires != 0 {
		hc.Expires = time.Unix(c.Expires, 0).UTC()
	}
	return hc
}

// String returns the Set-Cookie header value. It is empty when the name is invalid.
func (c Cookie) String() string {
	return c.HTTPCookie().String()
}

// Expired reports whether the cookie expiry lies before now.
func (c Cookie) Expired(now time.Time) bool {
	return c.Expires != 0 && c.Expires < now.Unix()
}
