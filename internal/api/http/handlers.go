package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calc/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/calc/internal/providers/calc"
	"github.com/GriffinCanCode/calc/internal/service"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	provider      *calc.Provider
	registry      *service.Registry
	metrics       *monitoring.Metrics
	logger        *logging.Logger
	maxExpression int
}

// NewHandlers creates a new handler set. maxExpression bounds the byte
// length of a single expression; zero means the console line limit.
func NewHandlers(
	provider *calc.Provider,
	registry *service.Registry,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
	maxExpression int,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxExpression <= 0 {
		maxExpression = 1024
	}
	return &Handlers{
		provider:      provider,
		registry:      registry,
		metrics:       metrics,
		logger:        logger.Named("http"),
		maxExpression: maxExpression,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "calc",
		"version": Version,
		"mode":    h.provider.DefaultMode().String(),
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"evaluations":      h.metrics.Snapshot(),
	})
}

// Evaluate validates and evaluates one expression
func (h *Handlers) Evaluate(c *gin.Context) {
	var req types.EvaluateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	mode, err := h.provider.ResolveMode(req.Mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.checkLength(req.Expression); err != nil {
		h.evaluationFailed(c, err)
		return
	}

	n, err := h.provider.Evaluate(c.Request.Context(), req.Expression, mode)
	if err != nil {
		h.evaluationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, types.EvaluateResponse{
		Result:    n.Float64(),
		Formatted: n.String(),
		Mode:      mode.String(),
	})
}

// Validate checks structure only; an invalid expression is still a 200
func (h *Handlers) Validate(c *gin.Context) {
	var req types.EvaluateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	mode, err := h.provider.ResolveMode(req.Mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.checkLength(req.Expression); err != nil {
		h.evaluationFailed(c, err)
		return
	}

	resp := types.ValidateResponse{Valid: true, Mode: mode.String()}
	if err := h.provider.Validate(req.Expression, mode); err != nil {
		resp.Valid = false
		resp.Reason = err.Error()
		var syn *expr.SyntaxError
		if errors.As(err, &syn) {
			offset := syn.Offset
			resp.Offset = &offset
			resp.Reason = syn.Reason
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Batch evaluates several independent expressions
func (h *Handlers) Batch(c *gin.Context) {
	var req types.BatchRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	mode, err := h.provider.ResolveMode(req.Mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	for i, e := range req.Expressions {
		if len(e) > h.maxExpression {
			badRequest(c, fmt.Errorf("expression %d exceeds %d bytes", i, h.maxExpression))
			return
		}
	}

	result, err := h.provider.Batch(c.Request.Context(), req.Expressions, mode)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, calc.ErrBatchTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, types.ErrorResponse{Error: err.Error()})
		return
	}

	renderJSON(c, http.StatusOK, result)
}

// defaultDiscoverLimit caps /services?q= results when no limit is given.
const defaultDiscoverLimit = 5

// ListServices lists available services. With q it ranks services by
// relevance to the query instead.
func (h *Handlers) ListServices(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		limit := defaultDiscoverLimit
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				badRequest(c, fmt.Errorf("invalid limit %q", s))
				return
			}
			limit = n
		}
		c.JSON(http.StatusOK, gin.H{
			"services": h.registry.Discover(q, limit),
			"query":    q,
		})
		return
	}

	var category *types.Category
	if s := c.Query("category"); s != "" {
		cat := types.Category(s)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	requestID := c.GetString(tracing.ContextKey)
	clientIP := c.ClientIP()
	appCtx := &types.Context{RequestID: &requestID, ClientIP: &clientIP}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		h.logger.Debug("Tool execution rejected", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) checkLength(expression string) error {
	if len(expression) > h.maxExpression {
		return fmt.Errorf("%w: expression exceeds %d bytes", expr.ErrRead, h.maxExpression)
	}
	return nil
}

// evaluationFailed reports an evaluation error as 422 with its kind and exit code
func (h *Handlers) evaluationFailed(c *gin.Context, err error) {
	kind := expr.KindOf(err)
	resp := types.ErrorResponse{
		Error: err.Error(),
		Kind:  kind.String(),
		Code:  expr.ExitCode(kind),
	}
	var syn *expr.SyntaxError
	if errors.As(err, &syn) {
		offset := syn.Offset
		resp.Offset = &offset
	}

	h.logger.Debug("Evaluation failed",
		zap.String("kind", resp.Kind),
		zap.String("request_id", c.GetString(tracing.ContextKey)),
	)
	c.JSON(http.StatusUnprocessableEntity, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
}
