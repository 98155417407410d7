// Package config provides 12-factor configuration management for the calculator.
//
// Configuration is layered: built-in defaults, then an optional TOML or YAML
// file named by CALC_CONFIG, then environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, connection cap)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP and server-wide rate limits
//   - Eval: Default numeric mode, input line limit, stack capacity, batch size
//   - Client: Remote evaluation timeout and retries
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	n, err := expr.Calculate(line, cfg.Eval.Mode())
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - MAX_CONNECTIONS
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - RATE_LIMIT_GLOBAL_RPS, RATE_LIMIT_GLOBAL_BURST
//   - CALC_FLOAT, CALC_MAX_LINE, CALC_STACK_CAPACITY, CALC_MAX_BATCH
//   - CALC_REMOTE_TIMEOUT, CALC_REMOTE_RETRIES
//   - CALC_CONFIG
package config
