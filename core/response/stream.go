package response

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// flushWriter flushes after every write and stops once the request is gone.
type flushWriter struct {
	ctx     context.Context
	w       io.Writer
	flusher http.Flusher
}

func (fw flushWriter) Write(p []byte) (int, error) {
	if err := fw.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := fw.w.Write(p)
	if err != nil {
		return n, err
	}
	fw.flusher.Flush()
	return n, nil
}

// Stream writes the body incrementally through fn. Every write is flushed
// to the client. The response status, content type, headers and cookies
// are sent first; Content-Length is never set.
//
//	resp.SetBody(response.Stream(func(w io.Writer) error {
//		for i := range 10 {
//			fmt.Fprintf(w, "chunk %d\n", i)
//		}
//		return nil
//	}))
func Stream(fn func(w io.Writer) error) Container {
	return ContainerFunc(func(w http.ResponseWriter, req *Request, resp *Response) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}

		startStream(w, resp, resp.ContentTypeHeader())

		if err := fn(flushWriter{ctx: req.Context(), w: w, flusher: flusher}); err != nil {
			// Status is already on the wire.
			return err
		}
		flusher.Flush()
		return nil
	})
}

type streamJSONConfig struct {
	onError func(context.Context, error)
}

// StreamOption configures StreamJSON.
type StreamOption func(*streamJSONConfig)

// WithStreamErrorHandler receives items that failed to encode.
func WithStreamErrorHandler(fn func(context.Context, error)) StreamOption {
	return func(c *streamJSONConfig) {
		c.onError = fn
	}
}

// StreamJSON writes every item received from items as one line of
// newline-delimited JSON until the channel closes or the request ends.
func StreamJSON(items <-chan any, opts ...StreamOption) Container {
	cfg := &streamJSONConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return ContainerFunc(func(w http.ResponseWriter, req *Request, resp *Response) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		startStream(w, resp, "application/x-ndjson")

		ctx := req.Context()
		enc := json.NewEncoder(w)
		for {
			select {
			case <-ctx.Done():
				return nil
			case item, ok := <-items:
				if !ok {
					return nil
				}
				if err := enc.Encode(item); err != nil {
					if cfg.onError != nil {
						cfg.onError(ctx, fmt.Errorf("failed to encode item: %w", err))
					}
					continue
				}
				flusher.Flush()
			}
		}
	})
}

func startStream(w http.ResponseWriter, resp *Response, contentType string) {
	resp.WriteMeta(w)
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Cache-Control", "no-cache")
	h.Del("Content-Length")
	resp.writeStatus(w)
}
