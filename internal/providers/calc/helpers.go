package calc

import (
	"errors"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFromError creates a failed result carrying the error kind and exit code
func FailureFromError(err error) (*types.Result, error) {
	msg := err.Error()
	data := ErrorData(err)
	return &types.Result{Success: false, Error: &msg, Data: data}, nil
}

// ErrorData describes an evaluation error for API payloads
func ErrorData(err error) map[string]interface{} {
	kind := expr.KindOf(err)
	data := map[string]interface{}{
		"kind": kind.String(),
		"code": expr.ExitCode(kind),
	}
	var syn *expr.SyntaxError
	if errors.As(err, &syn) {
		data["offset"] = syn.Offset
		data["reason"] = syn.Reason
	}
	return data
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetStrings extracts an array of strings from params
func GetStrings(params map[string]interface{}, key string) ([]string, bool) {
	switch v := params[key].(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
