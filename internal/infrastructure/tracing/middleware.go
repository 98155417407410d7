package tracing

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/calc/internal/shared/id"
)

// ContextKey is the gin context key holding the request ID
const ContextKey = "request_id"

const maxIncomingIDLength = 128

// HTTPMiddleware traces each request and stamps X-Request-ID on the response.
// An incoming X-Request-ID is reused when it is a ULID or UUID so calls can
// be correlated across hops.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(RequestIDHeader); id.IsCorrelationID(incoming) {
			ctx = WithRequestID(ctx, incoming)
		}
		if parent := c.GetHeader(SpanIDHeader); parent != "" && len(parent) <= maxIncomingIDLength {
			ctx = context.WithValue(ctx, spanIDKey, parent)
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKey, span.RequestID)
		c.Header(RequestIDHeader, span.RequestID)

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		} else if c.Writer.Status() >= 500 {
			span.SetError(fmt.Errorf("status %d", c.Writer.Status()))
		}

		span.Finish()
		tracer.Submit(span)
	}
}
