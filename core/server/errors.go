package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrFailedLoadCert       = errors.New("failed to load certificate")
	ErrListen               = errors.New("failed to listen")
	ErrServe                = errors.New("server error")
	ErrShutdown             = errors.New("server shutdown error")
)
