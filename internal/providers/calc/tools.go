package calc

import "github.com/GriffinCanCode/calc/internal/shared/types"

const (
	ToolEvaluate = "calc.evaluate"
	ToolValidate = "calc.validate"
	ToolBatch    = "calc.batch"
)

var modeParam = types.Parameter{
	Name:        "mode",
	Type:        "string",
	Description: `Numeric mode, "int" or "float" (default from server config)`,
	Required:    false,
}

// GetTools returns calculator tool definitions
func (p *Provider) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          ToolEvaluate,
			Name:        "Evaluate",
			Description: "Evaluate an arithmetic expression with + - * / and parentheses",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression to evaluate", Required: true},
				modeParam,
			},
			Returns: "number",
		},
		{
			ID:          ToolValidate,
			Name:        "Validate",
			Description: "Check an expression for structural errors without evaluating it",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression to check", Required: true},
				modeParam,
			},
			Returns: "object",
		},
		{
			ID:          ToolBatch,
			Name:        "Batch Evaluate",
			Description: "Evaluate several independent expressions and summarize the results",
			Parameters: []types.Parameter{
				{Name: "expressions", Type: "array", Description: "Expressions to evaluate", Required: true},
				modeParam,
			},
			Returns: "object",
		},
	}
}
