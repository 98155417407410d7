package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsSummary is a JSON view over the Prometheus counters
type StatsSummary struct {
	Timestamp        time.Time `json:"timestamp"`
	TotalRequests    int64     `json:"total_requests"`
	TotalEvaluations int64     `json:"total_evaluations"`
	FailedEvals      int64     `json:"failed_evaluations"`
	ErrorRate        float64   `json:"error_rate"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
}

// Stats returns aggregated evaluation counters
func (h *Handlers) Stats(c *gin.Context) {
	snap := h.metrics.Snapshot()

	summary := StatsSummary{
		Timestamp:        time.Now(),
		TotalRequests:    snap.TotalRequests,
		TotalEvaluations: snap.TotalEvaluations,
		FailedEvals:      snap.FailedEvals,
		UptimeSeconds:    snap.UptimeSeconds,
	}
	if snap.TotalEvaluations > 0 {
		summary.ErrorRate = float64(snap.FailedEvals) / float64(snap.TotalEvaluations)
	}

	c.JSON(http.StatusOK, summary)
}
