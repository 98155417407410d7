package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/calc/internal/shared/id"
)

func newObservedTracer() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestHTTPMiddlewareGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObservedTracer()

	var seen string
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) {
		seen = RequestID(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	tracer.Close()

	got := w.Header().Get(RequestIDHeader)
	assert.True(t, id.IsValid(got), "generated ID should be a prefixed ULID: %s", got)
	assert.Equal(t, got, seen)

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/ping", entries[0].ContextMap()["operation"])
}

func TestHTTPMiddlewareReusesIncomingID(t *testing.T) {
	const upstream = "0f8fad5b-d9cb-469f-a165-70867728950e"
	gin.SetMode(gin.TestMode)
	tracer, _ := newObservedTracer()
	defer tracer.Close()

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, upstream)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, upstream, w.Header().Get(RequestIDHeader))
	assert.Equal(t, upstream, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "not an id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.True(t, id.IsValid(w.Header().Get(RequestIDHeader)), "garbage IDs are replaced")
}

func TestStartSpanPropagation(t *testing.T) {
	tracer, _ := newObservedTracer()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	child, _ := tracer.StartSpan(ctx, "child")

	assert.Equal(t, parent.RequestID, child.RequestID)
	assert.Equal(t, parent.SpanID, child.ParentID)

	headers := map[string]string{}
	InjectHeaders(ctx, headers)
	assert.Equal(t, parent.RequestID, headers[RequestIDHeader])
	assert.Equal(t, parent.SpanID, headers[SpanIDHeader])
}

func TestCloseIsIdempotent(t *testing.T) {
	tracer, _ := newObservedTracer()
	tracer.Close()
	assert.NotPanics(t, tracer.Close)
}

func TestSubmitAfterCloseDropsSpan(t *testing.T) {
	tracer, logs := newObservedTracer()
	span, _ := tracer.StartSpan(context.Background(), "late")
	span.Finish()

	tracer.Close()
	assert.NotPanics(t, func() { tracer.Submit(span) })
	assert.Zero(t, logs.FilterMessage("span completed").Len())
}

func TestMiddlewareAfterClose(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, _ := newObservedTracer()
	tracer.Close()

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
