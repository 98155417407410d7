// Package monitoring collects Prometheus metrics for the calculator server.
//
// Metrics:
//   - calc_http_requests_total / calc_http_request_duration_seconds
//   - calc_evaluations_total{mode,outcome}
//   - calc_evaluation_duration_seconds{mode}
//   - calc_ws_connections, calc_uptime_seconds
//
// Each Metrics value owns a private registry, exposed through Handler.
package monitoring
