package response_test

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/respkit/core/response"
)

func TestWireWriter(t *testing.T) {
	t.Parallel()

	t.Run("implicit_ok", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		ww := response.NewWireWriter(&out)

		_, err := io.WriteString(ww, "body")
		require.NoError(t, err)

		assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nbody", out.String())
		assert.Equal(t, http.StatusOK, ww.Status())
	})

	t.Run("cgi_status", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		ww := response.NewWireWriter(&out)
		ww.CGI = true
		ww.Header().Set("Content-Type", "text/plain")

		ww.WriteHeader(http.StatusNotFound)
		ww.WriteHeader(http.StatusOK)

		assert.Equal(t, "Status: 404 Not Found\r\nContent-Type: text/plain\r\n\r\n", out.String())
		assert.Equal(t, http.StatusNotFound, ww.Status())
	})

	t.Run("code_outside_table", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		ww := response.NewWireWriter(&out)

		ww.WriteHeader(http.StatusPermanentRedirect)

		assert.Equal(t, "HTTP/1.1 308 Permanent Redirect\r\n\r\n", out.String())
	})

	t.Run("header_values_cannot_inject_lines", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		ww := response.NewWireWriter(&out)
		ww.Header().Set("X-Note", "a\r\nSet-Cookie: evil=1")

		ww.WriteStatusLine("HTTP/1.1 200 OK", http.StatusOK)

		assert.Equal(t, "HTTP/1.1 200 OK\r\nX-Note: a Set-Cookie: evil=1\r\n\r\n", out.String())
	})

	t.Run("flush_buffered_writer", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		bw := bufio.NewWriter(&out)
		ww := response.NewWireWriter(bw)

		_, err := ww.Write([]byte("x"))
		require.NoError(t, err)
		assert.Zero(t, out.Len())

		ww.Flush()
		assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nx", out.String())
		assert.NoError(t, ww.Err())
	})
}
