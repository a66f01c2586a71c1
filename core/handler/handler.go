package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrymomot/respkit/core/benchmark"
	"github.com/dmitrymomot/respkit/core/logger"
	"github.com/dmitrymomot/respkit/core/response"
)

// Func handles a request by mutating resp. The handler sends resp after
// Func returns; returning an error replaces it with an error response.
type Func func(req *response.Request, resp *response.Response) error

type handler struct {
	fn              Func
	respConfig      response.Config
	signer          response.Signer
	logger          *slog.Logger
	errorHandler    ErrorHandler
	requestIDHeader string
	trustRequestID  bool
	newRequestID    func() string
	slowThreshold   time.Duration
	requestOpts     []response.RequestOption
}

// New adapts fn to http.Handler. Each request gets its own Response,
// request id and timer registry; panics are recovered and answered like
// errors.
func New(fn Func, opts ...Option) http.Handler {
	h := &handler{
		fn:              fn,
		respConfig:      response.DefaultConfig(),
		logger:          logger.Nop(),
		errorHandler:    DefaultErrorHandler,
		requestIDHeader: "X-Request-ID",
		newRequestID:    defaultRequestID,
		slowThreshold:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	bench := benchmark.New()

	id := h.requestID(r)
	r = r.WithContext(withRequestID(r.Context(), id))
	req := response.NewRequest(r, h.requestOpts...)

	resp := h.newResponse(req, bench, id)

	err := bench.Measure("handler", func() error { return h.call(req, resp) })
	if err != nil {
		h.logError(req, id, err)
		if resp.Sent() {
			return
		}
		resp = h.newResponse(req, bench, id)
		h.errorHandler(req, resp, err)
	}

	if !resp.Sent() {
		if sendErr := resp.Send(w); sendErr != nil {
			h.logger.ErrorContext(r.Context(), "failed to send response",
				logger.RequestID(id),
				logger.Error(sendErr),
			)
		}
	}

	h.logRequest(req, resp, id, time.Since(start), bench)
}

func (h *handler) call(req *response.Request, resp *response.Response) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
			h.logger.ErrorContext(req.Context(), "panic recovered",
				logger.Component("handler"),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	return h.fn(req, resp)
}

func (h *handler) newResponse(req *response.Request, bench *benchmark.Registry, id string) *response.Response {
	opts := []response.Option{
		response.WithConfig(h.respConfig),
		response.WithLogger(h.logger),
		response.WithBenchmark(bench),
	}
	if h.signer != nil {
		opts = append(opts, response.WithSigner(h.signer))
	}
	return response.New(req, opts...).AddHeader(h.requestIDHeader, id)
}

func (h *handler) requestID(r *http.Request) string {
	if h.trustRequestID {
		if id := r.Header.Get(h.requestIDHeader); id != "" && len(id) <= 128 && !strings.ContainsAny(id, "\r\n") {
			return id
		}
	}
	return h.newRequestID()
}

func (h *handler) logError(req *response.Request, id string, err error) {
	e := AsError(err)
	level := slog.LevelWarn
	if e.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(req.Context(), level, "request failed",
		logger.RequestID(id),
		logger.StatusCode(e.Status),
		logger.Error(err),
	)
}

func (h *handler) logRequest(req *response.Request, resp *response.Response, id string, elapsed time.Duration, bench *benchmark.Registry) {
	r := req.HTTP()
	level := slog.LevelInfo
	if h.slowThreshold > 0 && elapsed > h.slowThreshold {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, "request completed",
		logger.Component("handler"),
		logger.RequestID(id),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(resp.Status()),
		logger.Duration(elapsed),
		logger.Timings(bench.All()),
	)
}

// DefaultErrorHandler answers with the status of err and its public
// message, as JSON when the client asks for it and as plain text otherwise.
func DefaultErrorHandler(req *response.Request, resp *response.Response, err error) {
	e := AsError(err)
	if _, ok := response.StatusText(e.Status); !ok {
		e.Status = http.StatusInternalServerError
	}
	resp.SetStatus(e.Status)

	accept, _ := req.Header("Accept")
	if strings.Contains(accept, "application/json") {
		if jerr := resp.SetJSON(e); jerr == nil {
			return
		}
	}
	resp.SetType("text/plain").SetBody(e.Message)
}
