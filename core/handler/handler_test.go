package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/respkit/core/handler"
	"github.com/dmitrymomot/respkit/core/logger"
	"github.com/dmitrymomot/respkit/core/response"
	"github.com/dmitrymomot/respkit/core/signer"
)

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestNew_SendsResponse(t *testing.T) {
	t.Parallel()

	h := handler.New(func(req *response.Request, resp *response.Response) error {
		resp.SetStatus(http.StatusCreated).SetType("text/plain").SetBody("made it")
		return nil
	})

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/items", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "made it", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "request id should be a UUID")
}

func TestNew_RequestID(t *testing.T) {
	t.Parallel()

	var seen string
	fn := func(req *response.Request, resp *response.Response) error {
		seen, _ = handler.RequestID(req.Context())
		return nil
	}

	t.Run("generated", func(t *testing.T) {
		h := handler.New(fn, handler.WithRequestIDGenerator(func() string { return "fixed-id" }))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "client-id")

		rec := serve(h, r)

		assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "fixed-id", seen)
	})

	t.Run("trusted_inbound", func(t *testing.T) {
		h := handler.New(fn, handler.WithConfig(handler.Config{
			Response:        response.DefaultConfig(),
			RequestIDHeader: "X-Trace-ID",
			TrustRequestID:  true,
		}))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Trace-ID", "client-id")

		rec := serve(h, r)

		assert.Equal(t, "client-id", rec.Header().Get("X-Trace-ID"))
		assert.Equal(t, "client-id", seen)
	})

	t.Run("oversized_inbound_replaced", func(t *testing.T) {
		h := handler.New(fn,
			handler.WithConfig(handler.Config{TrustRequestID: true}),
			handler.WithRequestIDGenerator(func() string { return "fresh" }),
		)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", strings.Repeat("x", 200))

		rec := serve(h, r)
		assert.Equal(t, "fresh", rec.Header().Get("X-Request-ID"))
	})
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		accept     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "typed_error",
			err:        handler.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Not Found",
		},
		{
			name:       "wrapped_typed_error",
			err:        fmt.Errorf("load user: %w", handler.ErrForbidden.WithMessage("members only")),
			wantStatus: http.StatusForbidden,
			wantBody:   "members only",
		},
		{
			name:       "pointer_error",
			err:        &handler.Error{Status: http.StatusConflict, Code: "DUP", Message: "already exists"},
			wantStatus: http.StatusConflict,
			wantBody:   "already exists",
		},
		{
			name:       "plain_error_hides_details",
			err:        errors.New("sql: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error",
		},
		{
			name:       "status_outside_table",
			err:        handler.Error{Status: http.StatusTooManyRequests, Message: "slow down"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := handler.New(func(req *response.Request, resp *response.Response) error {
				resp.AddHeader("X-Partial", "yes").SetBody("partial")
				return tt.err
			})

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Empty(t, rec.Header().Get("X-Partial"), "state of the failed response must be dropped")
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestNew_JSONErrors(t *testing.T) {
	t.Parallel()

	h := handler.New(func(req *response.Request, resp *response.Response) error {
		return handler.ErrUnprocessableEntity.WithDetails(map[string]any{"email": "invalid"})
	})
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Accept", "application/json")

	rec := serve(h, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", body["code"])
	assert.Equal(t, map[string]any{"email": "invalid"}, body["details"])
}

func TestNew_RecoversPanics(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	var handled error
	h := handler.New(
		func(req *response.Request, resp *response.Response) error {
			panic("nil map write")
		},
		handler.WithLogger(logger.New(logger.WithOutput(&logs), logger.WithJSONFormatter())),
		handler.WithErrorHandler(func(req *response.Request, resp *response.Response, err error) {
			handled = err
			resp.SetStatus(http.StatusServiceUnavailable).SetBody("try later")
		}),
	)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "try later", rec.Body.String())
	assert.ErrorIs(t, handled, handler.ErrPanic)
	assert.ErrorContains(t, handled, "nil map write")
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestNew_HandlerSentItself(t *testing.T) {
	t.Parallel()

	h := handler.New(func(req *response.Request, resp *response.Response) error {
		return resp.SetBody("early").Send(httptest.NewRecorder())
	})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Body.String(), "a sent response is not sent twice")
}

func TestNew_ResponseConfigAndSigner(t *testing.T) {
	t.Parallel()

	s, err := signer.New("an-adequately-long-secret-for-hmac-keys")
	require.NoError(t, err)

	h := handler.New(func(req *response.Request, resp *response.Response) error {
		if err := resp.AddSignedCookie("uid", "7", 0); err != nil {
			return err
		}
		resp.SetBody("cached")
		return nil
	},
		handler.WithResponseConfig(response.Config{Cache: true, Charset: "utf-8"}),
		handler.WithSigner(s),
	)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, response.ETag("cached"), rec.Header().Get("ETag"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	value, err := s.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "7", value)
}

func TestNew_LogsRequestSummary(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := handler.New(func(req *response.Request, resp *response.Response) error {
		resp.SetBody("ok")
		return nil
	},
		handler.WithLogger(logger.New(logger.WithOutput(&logs), logger.WithJSONFormatter(), logger.WithLevel(slog.LevelInfo))),
		handler.WithRequestIDGenerator(func() string { return "req-42" }),
	)

	serve(h, httptest.NewRequest(http.MethodGet, "/reports", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/reports", entry["path"])
	timings, ok := entry["timings"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, timings, "handler")
	assert.Contains(t, timings, "response.render")
}
