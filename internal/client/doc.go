// Package client evaluates expressions against a remote calc server.
//
// Requests go through resty with retries on transport errors, 429 and 5xx,
// all inside a circuit breaker. Evaluation failures reported by the server
// (422) do not trip the breaker and unwrap to the expr sentinels, so callers
// can classify them with expr.KindOf exactly like local failures.
package client
