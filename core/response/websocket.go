package response

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type wsConfig struct {
	upgrader       *websocket.Upgrader
	responseHeader http.Header
	onConnect      func(context.Context, *websocket.Conn) error
	onDisconnect   func(context.Context, *websocket.Conn)
	onError        func(context.Context, error)
}

type WebSocketOption func(*wsConfig)

func WithWSReadBuffer(size int) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.ReadBufferSize = size
	}
}

func WithWSWriteBuffer(size int) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.WriteBufferSize = size
	}
}

func WithWSHandshakeTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

func WithWSAllowAnyOrigin() WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

func WithWSSubprotocols(protocols ...string) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.Subprotocols = protocols
	}
}

// WithWSUpgradeHeaders adds headers to the 101 response.
func WithWSUpgradeHeaders(header http.Header) WebSocketOption {
	return func(c *wsConfig) {
		c.responseHeader = header
	}
}

func WithWSOnConnect(fn func(context.Context, *websocket.Conn) error) WebSocketOption {
	return func(c *wsConfig) {
		c.onConnect = fn
	}
}

func WithWSOnDisconnect(fn func(context.Context, *websocket.Conn)) WebSocketOption {
	return func(c *wsConfig) {
		c.onDisconnect = fn
	}
}

func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) {
		c.onError = fn
	}
}

type webSocket struct {
	cfg     *wsConfig
	handler func(context.Context, *websocket.Conn) error
}

// WebSocket upgrades the connection and runs handler until it returns.
// Cookies and headers accumulated on the response travel with the
// handshake. Handler errors go to the error handler option.
func WebSocket(handler func(context.Context, *websocket.Conn) error, opts ...WebSocketOption) Container {
	cfg := &wsConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &webSocket{cfg: cfg, handler: handler}
}

func (ws *webSocket) Emit(w http.ResponseWriter, req *Request, resp *Response) error {
	ctx := req.Context()

	header := resp.MetaHeader()
	for k, vs := range ws.cfg.responseHeader {
		header[k] = append(header[k], vs...)
	}

	conn, err := ws.cfg.upgrader.Upgrade(w, req.HTTP(), header)
	if err != nil {
		// The upgrader already replied with an HTTP error.
		ws.fail(ctx, err)
		return err
	}
	defer func() {
		_ = conn.Close()
		if ws.cfg.onDisconnect != nil {
			ws.cfg.onDisconnect(ctx, conn)
		}
	}()

	if ws.cfg.onConnect != nil {
		if err := ws.cfg.onConnect(ctx, conn); err != nil {
			ws.fail(ctx, err)
			return nil
		}
	}

	if err := ws.handler(ctx, conn); err != nil {
		ws.fail(ctx, err)
	}
	return nil
}

func (ws *webSocket) fail(ctx context.Context, err error) {
	if ws.cfg.onError != nil {
		ws.cfg.onError(ctx, err)
	}
}
