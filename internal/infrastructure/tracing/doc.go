/*
Package tracing correlates requests across the CLI client and the server.

Every HTTP request gets a span whose request ID is either taken from the
incoming X-Request-ID header or freshly generated as a ULID. The ID is stored
in the request context, echoed on the response, and logged with the span
duration once the handler returns.

# Usage

	tracer := tracing.New("calc", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Outgoing calls carry the same ID
	headers := map[string]string{}
	tracing.InjectHeaders(ctx, headers)

Finished spans are buffered (1000) and logged asynchronously; when the buffer
is full spans are dropped with a warning.
*/
package tracing
