package response

import (
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// StatusLineWriter is implemented by transports that emit the literal
// status line themselves instead of deriving it from a code.
type StatusLineWriter interface {
	WriteStatusLine(line string, code int)
}

var headerNewlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// WireWriter is an http.ResponseWriter that writes raw HTTP/1.x framing to
// an io.Writer: status line, header lines, Set-Cookie lines, a blank line
// and the body. Set CGI to emit "Status:" lines from WriteHeader.
type WireWriter struct {
	CGI bool

	w           io.Writer
	header      http.Header
	status      int
	wroteHeader bool
	err         error
}

var (
	_ http.ResponseWriter = (*WireWriter)(nil)
	_ http.Flusher        = (*WireWriter)(nil)
	_ StatusLineWriter    = (*WireWriter)(nil)
)

// NewWireWriter returns a WireWriter writing to w.
func NewWireWriter(w io.Writer) *WireWriter {
	return &WireWriter{
		w:      w,
		header: make(http.Header),
	}
}

func (ww *WireWriter) Header() http.Header {
	return ww.header
}

// WriteHeader emits a status line built from code.
func (ww *WireWriter) WriteHeader(code int) {
	reason, ok := StatusText(code)
	if !ok {
		reason = http.StatusText(code)
	}
	if ww.CGI {
		ww.WriteStatusLine(fmt.Sprintf("Status: %d %s", code, reason), code)
		return
	}
	ww.WriteStatusLine(fmt.Sprintf("HTTP/1.1 %d %s", code, reason), code)
}

// WriteStatusLine emits line followed by the headers. Only the first call
// has an effect.
func (ww *WireWriter) WriteStatusLine(line string, code int) {
	if ww.wroteHeader {
		return
	}
	ww.wroteHeader = true
	ww.status = code

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\r\n")
	for _, name := range slices.Sorted(maps.Keys(ww.header)) {
		if name == "Set-Cookie" {
			continue
		}
		for _, v := range ww.header[name] {
			b.WriteString(name + ": " + headerNewlines.Replace(v) + "\r\n")
		}
	}
	for _, v := range ww.header["Set-Cookie"] {
		b.WriteString("Set-Cookie: " + headerNewlines.Replace(v) + "\r\n")
	}
	b.WriteString("\r\n")

	_, ww.err = io.WriteString(ww.w, b.String())
}

func (ww *WireWriter) Write(p []byte) (int, error) {
	if !ww.wroteHeader {
		ww.WriteHeader(http.StatusOK)
	}
	if ww.err != nil {
		return 0, ww.err
	}
	n, err := ww.w.Write(p)
	if err != nil {
		ww.err = err
	}
	return n, err
}

// Flush flushes the underlying writer when it buffers.
func (ww *WireWriter) Flush() {
	if !ww.wroteHeader {
		ww.WriteHeader(http.StatusOK)
	}
	switch f := ww.w.(type) {
	case interface{ Flush() error }:
		if err := f.Flush(); err != nil && ww.err == nil {
			ww.err = err
		}
	case http.Flusher:
		f.Flush()
	}
}

// Status returns the status code written so far, or 0.
func (ww *WireWriter) Status() int {
	return ww.status
}

// Err returns the first error hit while writing.
func (ww *WireWriter) Err() error {
	return ww.err
}
