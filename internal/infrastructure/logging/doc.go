// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The server logs to stdout. The CLI logs to stderr at warn level by default
// so that stdout carries nothing but the evaluation result.
//
// Example Usage:
//
//	logger := logging.NewOrNop(logging.DefaultConfig())
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Debug("Evaluated expression", zap.String("mode", "int"))
package logging
