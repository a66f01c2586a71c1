package response_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/respkit/core/response"
)

func echo(ctx context.Context, conn *websocket.Conn) error {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil
		}
		if err := conn.WriteMessage(msgType, data); err != nil {
			return err
		}
	}
}

func newWSServer(t *testing.T, build func(resp *response.Response)) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := response.New(response.NewRequest(r))
		build(resp)
		_ = resp.Send(w)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocket_Echo(t *testing.T) {
	t.Parallel()

	url := newWSServer(t, func(resp *response.Response) {
		resp.AddCookie("sid", "abc", 0).
			AddHeader("X-Request-ID", "ws-1").
			SetBody(response.WebSocket(echo, response.WithWSAllowAnyOrigin()))
	})

	conn, httpResp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, http.StatusSwitchingProtocols, httpResp.StatusCode)
	assert.Equal(t, "sid=abc; Path=/", httpResp.Header.Get("Set-Cookie"))
	assert.Equal(t, "ws-1", httpResp.Header.Get("X-Request-ID"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	msgType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)
	assert.Equal(t, "ping", string(data))
}

func TestWebSocket_Hooks(t *testing.T) {
	t.Parallel()

	connected := make(chan struct{}, 1)
	disconnected := make(chan struct{}, 1)

	url := newWSServer(t, func(resp *response.Response) {
		resp.SetBody(response.WebSocket(
			func(ctx context.Context, conn *websocket.Conn) error {
				return conn.WriteMessage(websocket.TextMessage, []byte("bye"))
			},
			response.WithWSAllowAnyOrigin(),
			response.WithWSOnConnect(func(context.Context, *websocket.Conn) error {
				connected <- struct{}{}
				return nil
			}),
			response.WithWSOnDisconnect(func(context.Context, *websocket.Conn) {
				disconnected <- struct{}{}
			}),
		))
	})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))

	for name, ch := range map[string]chan struct{}{"connect": connected, "disconnect": disconnected} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s hook was not called", name)
		}
	}
}

func TestWebSocket_UpgradeFailure(t *testing.T) {
	t.Parallel()

	errs := make(chan error, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := response.New(response.NewRequest(r)).SetBody(response.WebSocket(echo,
			response.WithWSErrorHandler(func(_ context.Context, err error) { errs <- err }),
		))
		assert.ErrorIs(t, resp.Send(w), response.ErrContainer)
	}))
	defer server.Close()

	res, err := http.Get(server.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}
