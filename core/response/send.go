package response

import (
	"bytes"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/respkit/core/logger"
)

// Buffers that grew past this size are dropped instead of pooled.
const maxPooledBuffer = 1 << 20

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func acquireBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// Send transmits the response to w. A container body transmits itself;
// any other body is rendered, filtered, optionally tagged and compressed,
// and written after the status line, headers and cookies.
// A Response can be sent once; later calls return ErrAlreadySent.
func (r *Response) Send(w http.ResponseWriter) error {
	if r.sent {
		return ErrAlreadySent
	}
	r.sent = true

	if c, ok := r.body.Container(); ok {
		if err := r.measure("response.container", func() error { return c.Emit(w, r.req, r) }); err != nil {
			return fmt.Errorf("%w: %w", ErrContainer, err)
		}
		r.logger.DebugContext(r.req.Context(), "container response sent",
			logger.Component("response"),
			logger.Key("container", fmt.Sprintf("%T", c)),
		)
		return nil
	}

	return r.sendStandard(w)
}

func (r *Response) sendStandard(w http.ResponseWriter) error {
	ctx := r.req.Context()

	buf := acquireBuffer()
	defer releaseBuffer(buf)

	var body string
	err := r.measure("response.render", func() error {
		if err := r.body.render(ctx, buf); err != nil {
			return err
		}
		body = buf.String()
		buf.Reset()
		return nil
	})
	if err != nil {
		return err
	}

	_ = r.measure("response.filters", func() error {
		for _, f := range r.filters {
			body = f(body)
		}
		return nil
	})
	r.body = RawBody(body)

	suppressed := false
	if r.cache {
		etag := ETag(body)
		r.AddHeader("ETag", etag)
		if match, ok := r.req.Header("If-None-Match"); ok && match == etag {
			r.status = http.StatusNotModified
			suppressed = true
		}
	}

	if !suppressed && bodyAllowed(r.status) {
		if err := r.encodeBody(buf, body); err != nil {
			return err
		}
		if _, ok := r.headers["transfer-encoding"]; !ok {
			r.AddHeader("Content-Length", strconv.Itoa(buf.Len()))
		}
	}

	r.writeHead(w)

	var n int
	if buf.Len() > 0 {
		err := r.measure("response.write", func() error {
			var werr error
			n, werr = w.Write(buf.Bytes())
			return werr
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	r.logger.DebugContext(ctx, "response sent",
		logger.Component("response"),
		logger.StatusCode(r.status),
		logger.ContentType(r.contentType),
		logger.BytesOut(int64(n)),
	)
	return nil
}

// encodeBody writes the outgoing body bytes into buf, gzip-compressed when
// compression is enabled and the client accepts it.
func (r *Response) encodeBody(buf *bytes.Buffer, body string) error {
	if !r.compress {
		buf.WriteString(body)
		return nil
	}

	r.addVary("Accept-Encoding")
	accept, _ := r.req.Header("Accept-Encoding")
	if !acceptsGzip(accept) {
		buf.WriteString(body)
		return nil
	}

	if err := r.measure("response.compress", func() error {
		return gzipTo(buf, body, r.compressLevel)
	}); err != nil {
		return err
	}
	r.AddHeader("Content-Encoding", "gzip")
	return nil
}

func (r *Response) addVary(value string) {
	current, ok := r.headers["vary"]
	if !ok || current == "" {
		r.headers["vary"] = value
		return
	}
	for v := range strings.SplitSeq(current, ",") {
		if strings.EqualFold(strings.TrimSpace(v), value) {
			return
		}
	}
	r.headers["vary"] = current + ", " + value
}

// StatusLine returns the first line of the response. FastCGI deployments
// get a "Status:" line; everything else uses the request protocol.
func (r *Response) StatusLine() string {
	reason, _ := StatusText(r.status)
	if _, ok := r.req.LookupServer(ServerFastCGI); ok {
		return fmt.Sprintf("Status: %d %s", r.status, reason)
	}
	return fmt.Sprintf("%s %d %s", r.req.Server(ServerProtocol, "HTTP/1.1"), r.status, reason)
}

// ContentTypeHeader returns the Content-Type value. Textual types, JSON and
// XML carry the charset.
func (r *Response) ContentTypeHeader() string {
	if r.charset == "" {
		return r.contentType
	}
	ct := strings.ToLower(r.contentType)
	if strings.HasPrefix(ct, "text/") || ct == "application/json" || ct == "application/xml" {
		return r.contentType + "; charset=" + r.charset
	}
	return r.contentType
}

// MetaHeader returns the accumulated headers and one Set-Cookie entry per cookie.
func (r *Response) MetaHeader() http.Header {
	h := make(http.Header, len(r.headers)+1)
	for _, name := range slices.Sorted(maps.Keys(r.headers)) {
		h.Set(name, r.headers[name])
	}
	for _, c := range r.cookies {
		if v := c.String(); v != "" {
			h.Add("Set-Cookie", v)
		}
	}
	return h
}

// WriteMeta copies the accumulated headers and cookies onto w. Containers
// call it before writing anything.
func (r *Response) WriteMeta(w http.ResponseWriter) {
	dst := w.Header()
	for name, values := range r.MetaHeader() {
		if name == "Set-Cookie" {
			dst[name] = append(dst[name], values...)
			continue
		}
		dst[name] = values
	}
}

func (r *Response) writeHead(w http.ResponseWriter) {
	w.Header().Set("Content-Type", r.ContentTypeHeader())
	r.WriteMeta(w)
	r.writeStatus(w)
}

// writeStatus hands the status to w, as a literal line when w accepts one.
// net/http treats 100 and 102 as interim responses, so they are not passed
// to WriteHeader and the final status stays 200.
func (r *Response) writeStatus(w http.ResponseWriter) {
	if sw, ok := w.(StatusLineWriter); ok {
		sw.WriteStatusLine(r.StatusLine(), r.status)
		return
	}
	if r.status == http.StatusContinue || r.status == http.StatusProcessing {
		return
	}
	w.WriteHeader(r.status)
}

func (r *Response) measure(name string, fn func() error) error {
	if r.bench == nil {
		return fn()
	}
	return r.bench.Measure(name, fn)
}
