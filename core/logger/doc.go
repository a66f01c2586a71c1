// Package logger builds structured loggers on top of log/slog and provides
// attribute helpers for the values this module logs most often: errors,
// request identifiers, status codes, byte counts and timings.
//
//	log := logger.New(
//		logger.WithProduction("shop"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("response sent",
//		logger.Component("response"),
//		logger.StatusCode(200),
//		logger.BytesOut(512),
//	)
//
// Helpers such as Error and RequestID return an empty attribute for nil or
// empty input; slog drops empty attributes, so they are safe to pass
// unconditionally.
package logger
