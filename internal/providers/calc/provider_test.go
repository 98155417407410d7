package calc

import (
	"context"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calc/internal/shared/id"
	"github.com/GriffinCanCode/calc/internal/shared/testutil"
)

func newTestProvider(t *testing.T) (*Provider, *monitoring.Metrics) {
	t.Helper()
	metrics := monitoring.NewMetrics()
	return NewProvider(Options{MaxBatchSize: 4, Metrics: metrics}), metrics
}

func TestDefinition(t *testing.T) {
	p, _ := newTestProvider(t)
	def := p.Definition()

	assert.Equal(t, "calc", def.ID)
	require.Len(t, def.Tools, 3)
	assert.Equal(t, ToolEvaluate, def.Tools[0].ID)
	assert.Equal(t, ToolValidate, def.Tools[1].ID)
	assert.Equal(t, ToolBatch, def.Tools[2].ID)
}

func TestExecuteEvaluate(t *testing.T) {
	p, metrics := newTestProvider(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		params    map[string]interface{}
		result    float64
		formatted string
		mode      string
	}{
		{"default integer mode", map[string]interface{}{"expression": "2+3*4"}, 14, "14", "int"},
		{"explicit float mode", map[string]interface{}{"expression": "1.5*2", "mode": "float"}, 3, "3.0000", "float"},
		{"truncating division", map[string]interface{}{"expression": "7/2", "mode": "int"}, 3, "3", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Execute(ctx, ToolEvaluate, tt.params, nil)
			require.NoError(t, err)
			testutil.AssertSuccess(t, res)
			testutil.AssertDataField(t, res, "result", tt.result)
			testutil.AssertDataField(t, res, "formatted", tt.formatted)
			testutil.AssertDataField(t, res, "mode", tt.mode)
		})
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(metrics.EvaluationsTotal.WithLabelValues("int", monitoring.OutcomeOK)))
}

func TestExecuteEvaluateFailures(t *testing.T) {
	p, metrics := newTestProvider(t)
	ctx := context.Background()

	res, err := p.Execute(ctx, ToolEvaluate, map[string]interface{}{"expression": "5/0"}, nil)
	require.NoError(t, err)
	testutil.AssertFailure(t, res)
	assert.Equal(t, "division_by_zero", res.Data["kind"])
	assert.Equal(t, 1, res.Data["code"])
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.EvaluationsTotal.WithLabelValues("int", "division_by_zero")))

	res, err = p.Execute(ctx, ToolEvaluate, map[string]interface{}{"expression": "5+"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "validation_error", res.Data["kind"])
	assert.Equal(t, 2, res.Data["code"])
	assert.Equal(t, 2, res.Data["offset"])

	res, err = p.Execute(ctx, ToolEvaluate, map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "expression parameter required", *res.Error)

	res, err = p.Execute(ctx, ToolEvaluate, map[string]interface{}{"expression": "1", "mode": "hex"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestEvaluateUnknownMode(t *testing.T) {
	p, metrics := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Evaluate(ctx, "1+1", expr.Mode(42))
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, expr.KindNone, expr.KindOf(err))

	_, err = p.Batch(ctx, []string{"1"}, expr.Mode(42))
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Zero(t, promtest.CollectAndCount(metrics.EvaluationsTotal), "nothing was evaluated")
}

func TestExecuteValidate(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	res, err := p.Execute(ctx, ToolValidate, map[string]interface{}{"expression": "(1+2)*3"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, true, res.Data["valid"])

	res, err = p.Execute(ctx, ToolValidate, map[string]interface{}{"expression": "(5+3"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, false, res.Data["valid"])
	assert.Equal(t, "unbalanced parentheses", res.Data["reason"])
}

func TestExecuteUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Execute(context.Background(), "calc.sqrt", nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "unknown tool: calc.sqrt", *res.Error)
}

func TestBatch(t *testing.T) {
	p, _ := newTestProvider(t)

	batch, err := p.Batch(context.Background(), []string{"1+1", "5/0", "2*3", "10-2-3"}, expr.ModeInteger)
	require.NoError(t, err)

	assert.True(t, id.IsValid(batch.ID))
	require.Len(t, batch.Items, 4)
	assert.Equal(t, "division_by_zero", batch.Items[1].Kind)
	assert.Nil(t, batch.Items[1].Result)
	require.NotNil(t, batch.Items[3].Result)
	assert.Equal(t, 5.0, *batch.Items[3].Result)

	s := batch.Summary
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 13.0/3.0, s.Mean, 1e-9)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestBatchLimits(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Batch(ctx, nil, expr.ModeInteger)
	assert.Error(t, err)

	_, err = p.Batch(ctx, []string{"1", "2", "3", "4", "5"}, expr.ModeInteger)
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.Batch(cancelled, []string{"1"}, expr.ModeInteger)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchSummaryEdges(t *testing.T) {
	s := summarize(nil, 2)
	assert.Equal(t, Summary{Count: 2, Failed: 2}, s)

	s = summarize([]float64{7}, 1)
	assert.Equal(t, 7.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 7.0, s.Min)
	assert.Equal(t, 7.0, s.Max)
}

func TestExecuteBatchParams(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Execute(context.Background(), ToolBatch, map[string]interface{}{
		"expressions": []interface{}{"1.5*2", "1/0.00001"},
		"mode":        "float",
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "float", res.Data["mode"])

	items := res.Data["results"].([]BatchItem)
	require.Len(t, items, 2)
	assert.Equal(t, "3.0000", items[0].Formatted)
	assert.Equal(t, "division_by_zero", items[1].Kind)

	res, err = p.Execute(context.Background(), ToolBatch, map[string]interface{}{
		"expressions": []interface{}{"1", 2},
	}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}
