// Package response accumulates the state of an HTTP response and transmits
// it in one terminal step.
//
// A Response is created per request, mutated through chainable setters and
// consumed by Send:
//
//	req := response.NewRequest(r)
//	resp := response.New(req, response.WithConfig(cfg))
//	resp.SetStatus(http.StatusCreated).
//		AddHeader("X-Frame-Options", "DENY").
//		AddCookie("theme", "dark", 24*time.Hour, response.WithHTTPOnly(true)).
//		SetBody(views.Page(data))
//	if err := resp.Send(w); err != nil {
//		log.Error("send failed", logger.Error(err))
//	}
//
// # Bodies
//
// Strings, byte slices, templ components, readers, fmt.Stringer values and
// errors are rendered to text. Setting another Response copies its body.
// A Container body (File, Attachment, Redirect, Back, Stream, StreamJSON,
// WebSocket) takes over transmission entirely after copying the
// accumulated headers and cookies with WriteMeta.
//
// # Standard send pipeline
//
// For non-container bodies Send renders the body into a pooled buffer, runs
// the output filters in registration order, adds an ETag when caching is
// enabled (answering a matching If-None-Match with 304 and no body), gzips
// the body when compression is enabled and the client accepts it, sets
// Content-Length unless a Transfer-Encoding header is present, and writes
// status, Content-Type, headers, Set-Cookie lines and body.
//
// # Status line
//
// Writers implementing StatusLineWriter receive the literal status line:
// "Status: 200 OK" when the request came through FastCGI, otherwise the
// request protocol followed by code and reason. WireWriter produces raw
// HTTP framing over any io.Writer.
//
// # Configuration
//
// Config is read from the environment:
//
//	RESPONSE_COMPRESS_OUTPUT=false
//	RESPONSE_CACHE=false
//	RESPONSE_CHARSET=utf-8
//	RESPONSE_COMPRESSION_LEVEL=-1
package response
