package response_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/respkit/core/response"
)

func TestCharsetFilter(t *testing.T) {
	t.Parallel()

	t.Run("latin1", func(t *testing.T) {
		t.Parallel()
		f, err := response.CharsetFilter("iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, "caf\xe9", f("café"))
	})

	t.Run("unsupported_runes_replaced", func(t *testing.T) {
		t.Parallel()
		f, err := response.CharsetFilter("windows-1252")
		require.NoError(t, err)
		out := f("a☃b")
		assert.Equal(t, byte('a'), out[0])
		assert.Equal(t, byte('b'), out[len(out)-1])
		assert.NotContains(t, out, "☃")
	})

	t.Run("utf8_is_identity", func(t *testing.T) {
		t.Parallel()
		f, err := response.CharsetFilter("UTF-8")
		require.NoError(t, err)
		assert.Equal(t, "héllo ☃", f("héllo ☃"))
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := response.CharsetFilter("klingon")
		assert.ErrorIs(t, err, response.ErrUnknownCharset)
	})

	t.Run("in_pipeline", func(t *testing.T) {
		t.Parallel()
		f, err := response.CharsetFilter("iso-8859-1")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		resp := newResponse(t).SetBody("café").SetCharset("iso-8859-1").AddOutputFilter(f)
		require.NoError(t, resp.Send(rec))

		assert.Equal(t, "caf\xe9", rec.Body.String())
		assert.Equal(t, "4", rec.Header().Get("Content-Length"))
		assert.Equal(t, "text/html; charset=iso-8859-1", rec.Header().Get("Content-Type"))
	})
}

func TestReplaceFilter(t *testing.T) {
	t.Parallel()

	f := response.ReplaceFilter("{{year}}", "2024", "{{name}}", "respkit")
	assert.Equal(t, "respkit © 2024", f("{{name}} © {{year}}"))
}
