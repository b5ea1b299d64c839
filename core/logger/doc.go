// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development (console)
// and production (json) encodings and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID stored by the rayid middleware and attaches it
// to every log entry of a request. WithRun does the same for the run identifier
// assigned to each fleet reconciliation, so the CLI and HTTP paths log alike.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Upload failed", zap.Error(err))
package logger
