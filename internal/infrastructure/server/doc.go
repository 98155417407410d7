// Package server assembles the calc HTTP server: middleware, the calc
// provider registered in a service registry, REST and WebSocket routes and
// the Prometheus endpoint.
//
// Responses are gzip-compressed when the client accepts it, except on the
// WebSocket route. Run caps concurrent connections at
// config.ServerConfig.MaxConnections.
package server
