package calc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

var (
	// ErrBatchTooLarge is returned when a batch exceeds the configured size
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrUnknownMode is returned for a numeric mode with no evaluator
	ErrUnknownMode = errors.New("unknown numeric mode")
)

// Options configures a Provider
type Options struct {
	DefaultMode   expr.Mode
	StackCapacity int
	MaxBatchSize  int
	Logger        *logging.Logger
	Metrics       *monitoring.Metrics
}

// Provider exposes expression evaluation as a service
type Provider struct {
	defaultMode expr.Mode
	evaluators  map[expr.Mode]*expr.Evaluator
	maxBatch    int
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewProvider creates a calculator provider
func NewProvider(opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	maxBatch := opts.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = 100
	}

	return &Provider{
		defaultMode: opts.DefaultMode,
		evaluators: map[expr.Mode]*expr.Evaluator{
			expr.ModeInteger: expr.New(expr.WithMode(expr.ModeInteger), expr.WithStackCapacity(opts.StackCapacity)),
			expr.ModeFloat:   expr.New(expr.WithMode(expr.ModeFloat), expr.WithStackCapacity(opts.StackCapacity)),
		},
		maxBatch: maxBatch,
		logger:   logger.Named("calc"),
		metrics:  opts.Metrics,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "calc",
		Name:         "Calculator Service",
		Description:  "Arithmetic expression evaluation with integer and float modes",
		Category:     types.CategoryMath,
		Capabilities: []string{"evaluate", "validate", "batch"},
		Tools:        p.GetTools(),
	}
}

// DefaultMode returns the mode used when a request does not name one
func (p *Provider) DefaultMode() expr.Mode {
	return p.defaultMode
}

// ResolveMode parses a mode name, falling back to the default when empty
func (p *Provider) ResolveMode(name string) (expr.Mode, error) {
	if name == "" {
		return p.defaultMode, nil
	}
	return expr.ParseMode(name)
}

// Evaluate validates and evaluates one expression
func (p *Provider) Evaluate(ctx context.Context, expression string, mode expr.Mode) (expr.Number, error) {
	evaluator, ok := p.evaluators[mode]
	if !ok {
		return expr.Number{}, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
	timer := monitoring.NewTimer(p.metrics, mode.String())

	n, err := evaluator.Calculate(expression)

	outcome := monitoring.OutcomeOK
	if err != nil {
		outcome = expr.KindOf(err).String()
	}
	timer.Stop(outcome)

	p.logger.Debug("Evaluated expression",
		zap.String("mode", mode.String()),
		zap.Int("expression_len", len(expression)),
		zap.String("outcome", outcome),
	)
	return n, err
}

// Validate checks expression structure only
func (p *Provider) Validate(expression string, mode expr.Mode) error {
	return expr.Validate(expression, mode)
}

// Execute routes a tool call
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case ToolEvaluate:
		return p.executeEvaluate(ctx, params)
	case ToolValidate:
		return p.executeValidate(params)
	case ToolBatch:
		return p.executeBatch(ctx, params)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) modeParam(params map[string]interface{}) (expr.Mode, error) {
	name, _ := GetString(params, "mode")
	return p.ResolveMode(name)
}

func (p *Provider) executeEvaluate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	expression, ok := GetString(params, "expression")
	if !ok {
		return Failure("expression parameter required")
	}
	mode, err := p.modeParam(params)
	if err != nil {
		return Failure(err.Error())
	}

	n, err := p.Evaluate(ctx, expression, mode)
	if err != nil {
		return FailureFromError(err)
	}

	return Success(map[string]interface{}{
		"result":    n.Float64(),
		"formatted": n.String(),
		"mode":      mode.String(),
	})
}

func (p *Provider) executeValidate(params map[string]interface{}) (*types.Result, error) {
	expression, ok := GetString(params, "expression")
	if !ok {
		return Failure("expression parameter required")
	}
	mode, err := p.modeParam(params)
	if err != nil {
		return Failure(err.Error())
	}

	data := map[string]interface{}{"valid": true, "mode": mode.String()}
	if err := p.Validate(expression, mode); err != nil {
		for k, v := range ErrorData(err) {
			data[k] = v
		}
		data["valid"] = false
	}
	return Success(data)
}

func (p *Provider) executeBatch(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	expressions, ok := GetStrings(params, "expressions")
	if !ok {
		return Failure("expressions parameter required (array of strings)")
	}
	mode, err := p.modeParam(params)
	if err != nil {
		return Failure(err.Error())
	}

	batch, err := p.Batch(ctx, expressions, mode)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"id":      batch.ID,
		"mode":    batch.Mode,
		"results": batch.Items,
		"summary": batch.Summary,
	})
}
