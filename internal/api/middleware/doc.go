// Package middleware holds the gin middleware shared by the HTTP and
// WebSocket endpoints: CORS headers and token-bucket rate limiting.
package middleware
