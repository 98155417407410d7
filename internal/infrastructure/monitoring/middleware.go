package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// OutcomeOK labels a successful evaluation
const OutcomeOK = "ok"

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}

// Timer measures evaluation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	mode    string
}

// NewTimer creates a new timer; a nil metrics makes Stop a no-op
func NewTimer(metrics *Metrics, mode string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		mode:    mode,
	}
}

// Stop stops the timer and records the evaluation
func (t *Timer) Stop(outcome string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordEvaluation(t.mode, outcome, time.Since(t.start))
}
