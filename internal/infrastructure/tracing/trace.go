package tracing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/shared/id"
)

// Header names used for propagation
const (
	RequestIDHeader = "X-Request-ID"
	SpanIDHeader    = "X-Span-ID"
)

// Span represents a single traced operation
type Span struct {
	RequestID  string
	SpanID     string
	ParentID   string
	Name       string
	Service    string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// Tracer collects finished spans and logs them
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan *Span
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// New creates a tracer and starts its collector
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, 1000),
		done:    make(chan struct{}),
	}

	go t.collectSpans()

	return t
}

// StartSpan creates a span, inheriting the request ID from ctx when present
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = id.NewRequestID().String()
	}

	span := &Span{
		RequestID: requestID,
		SpanID:    id.Default().Generate().String(),
		ParentID:  spanID(ctx),
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = WithRequestID(ctx, requestID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Finish records the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records an error in the span
func (s *Span) SetError(err error) {
	s.Error = err
}

// SetStatus sets the HTTP status code
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

func (t *Tracer) collectSpans() {
	defer close(t.done)
	for span := range t.spans {
		t.processSpan(span)
	}
}

func (t *Tracer) processSpan(span *Span) {
	fields := []zap.Field{
		zap.String("request_id", span.RequestID),
		zap.String("span_id", span.SpanID),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.Int("status", span.StatusCode),
		zap.String("service", span.Service),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", span.ParentID))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		fields = append(fields, zap.Error(span.Error))
		t.logger.Warn("span completed with error", fields...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

// Submit hands a finished span to the collector. Spans are dropped when the
// buffer is full or the tracer has been closed.
func (t *Tracer) Submit(span *Span) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("request_id", span.RequestID),
			zap.String("span_id", span.SpanID),
		)
	}
}

// Close drains pending spans and stops the collector. It is safe to call
// more than once.
func (t *Tracer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		<-t.done
		return
	}
	t.closed = true
	close(t.spans)
	t.mu.Unlock()
	<-t.done
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	spanIDKey    contextKey = "span_id"
)

// WithRequestID stores a request ID in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID retrieves the request ID from ctx
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func spanID(ctx context.Context) string {
	v, _ := ctx.Value(spanIDKey).(string)
	return v
}

// InjectHeaders copies the trace context of ctx into headers
func InjectHeaders(ctx context.Context, headers map[string]string) {
	if v := RequestID(ctx); v != "" {
		headers[RequestIDHeader] = v
	}
	if v := spanID(ctx); v != "" {
		headers[SpanIDHeader] = v
	}
}
