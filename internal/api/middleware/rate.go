package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/calc/internal/infrastructure/config"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// IdleTTL is how long a per-IP limiter survives without traffic.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns production-ready rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		IdleTTL:           10 * time.Minute,
	}
}

// RateLimitFromConfig converts the application rate limit settings.
func RateLimitFromConfig(cfg config.RateLimitConfig) RateLimitConfig {
	out := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond > 0 {
		out.RequestsPerSecond = cfg.RequestsPerSecond
	}
	if cfg.Burst > 0 {
		out.Burst = cfg.Burst
	}
	return out
}

// GlobalRateLimitFromConfig returns the server-wide limit. ok is false when
// no global rate is configured.
func GlobalRateLimitFromConfig(cfg config.RateLimitConfig) (out RateLimitConfig, ok bool) {
	if cfg.GlobalRequestsPerSecond <= 0 {
		return RateLimitConfig{}, false
	}
	out = RateLimitConfig{
		RequestsPerSecond: cfg.GlobalRequestsPerSecond,
		Burst:             cfg.GlobalBurst,
	}
	if out.Burst <= 0 {
		out.Burst = out.RequestsPerSecond
	}
	return out, true
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastSweep = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if cfg.IdleTTL > 0 && now.Sub(lastSweep) > cfg.IdleTTL {
			for key, cl := range clients {
				if now.Sub(cl.lastSeen) > cfg.IdleTTL {
					delete(clients, key)
				}
			}
			lastSweep = now
		}
		cl, exists := clients[ip]
		if !exists {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		limiter := cl.limiter
		mu.Unlock()

		if !limiter.Allow() {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

// GlobalRateLimit creates a middleware sharing one limiter across all clients.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
		Error: "rate limit exceeded",
		Kind:  "rate_limited",
	})
}
