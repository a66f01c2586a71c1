// Package server runs an http.Handler until its context is canceled, either
// as a plain HTTP(S) server or as a FastCGI responder behind a front web server.
//
// Start blocks until the context is canceled and then shuts down gracefully:
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//	if err := srv.Start(ctx, h); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// With FastCGI enabled the same listener speaks the FastCGI protocol and
// responses built by the response package carry a "Status:" line instead of
// an HTTP status line. Configuration can be loaded from the environment:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
package server
