package calc

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/shared/id"
)

// BatchItem is the outcome of one expression in a batch
type BatchItem struct {
	Expression string   `json:"expression"`
	Result     *float64 `json:"result,omitempty"`
	Formatted  string   `json:"formatted,omitempty"`
	Error      string   `json:"error,omitempty"`
	Kind       string   `json:"kind,omitempty"`
}

// Summary aggregates the successful results of a batch
type Summary struct {
	Count     int     `json:"count"`
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stddev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// BatchResult holds every item plus the summary
type BatchResult struct {
	ID      string      `json:"id"`
	Mode    string      `json:"mode"`
	Items   []BatchItem `json:"results"`
	Summary Summary     `json:"summary"`
}

// Batch evaluates each expression independently. One failing item does not
// affect the others; cancellation of ctx stops the batch.
func (p *Provider) Batch(ctx context.Context, expressions []string, mode expr.Mode) (*BatchResult, error) {
	if len(expressions) == 0 {
		return nil, fmt.Errorf("expressions array required")
	}
	if len(expressions) > p.maxBatch {
		return nil, fmt.Errorf("%w: %d expressions, limit %d", ErrBatchTooLarge, len(expressions), p.maxBatch)
	}
	if _, ok := p.evaluators[mode]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	res := &BatchResult{
		ID:    id.NewBatchID().String(),
		Mode:  mode.String(),
		Items: make([]BatchItem, 0, len(expressions)),
	}
	values := make([]float64, 0, len(expressions))

	for _, e := range expressions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := BatchItem{Expression: e}
		n, err := p.Evaluate(ctx, e, mode)
		if err != nil {
			item.Error = err.Error()
			item.Kind = expr.KindOf(err).String()
		} else {
			v := n.Float64()
			item.Result = &v
			item.Formatted = n.String()
			values = append(values, v)
		}
		res.Items = append(res.Items, item)
	}

	res.Summary = summarize(values, len(expressions))
	return res, nil
}

func summarize(values []float64, total int) Summary {
	s := Summary{
		Count:     total,
		Succeeded: len(values),
		Failed:    total - len(values),
	}
	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
