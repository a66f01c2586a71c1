// Package handler adapts response-building functions to http.Handler.
//
// A Func receives the request view and a fresh Response, mutates the
// response and returns. The handler then sends it:
//
//	h := handler.New(func(req *response.Request, resp *response.Response) error {
//		user, err := users.Find(req.Context(), req.HTTP().PathValue("id"))
//		if err != nil {
//			return handler.ErrNotFound
//		}
//		resp.SetBody(views.Profile(user))
//		return nil
//	}, handler.WithConfig(cfg), handler.WithLogger(log))
//
// Every request gets:
//
//   - a request id, generated with UUID v4 or taken from the inbound header
//     when TrustRequestID is set, echoed in the response and available
//     through RequestID(ctx)
//   - panic recovery, reported as ErrPanic
//   - error responses: an Error carries its status and public message, any
//     other error is answered with 500 and a generic message
//   - a benchmark.Registry timing the handler and each send stage, logged
//     with the request summary
//
// Error rendering can be replaced with WithErrorHandler. The replacement
// receives a fresh Response that still carries the request id header.
package handler
