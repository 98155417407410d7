// Package expr validates and evaluates single-line arithmetic expressions.
//
// Supported syntax:
//   - Binary operators: + - * /
//   - Parentheses for grouping
//   - Unsigned numeric literals (integer mode: digit runs; float mode:
//     digits with an optional fraction and exponent)
//
// Evaluation uses two bounded stacks (operands, operators) and folds partial
// results as soon as precedence allows, so no output queue is built.
// The numeric mode is chosen per call and never changes during an evaluation.
//
// Error kinds:
//   - Validation: malformed expression (ErrInvalidInput)
//   - DivisionByZero: zero divisor, or a float divisor within 1e-4 of zero
//   - Range: a literal or intermediate result outside [-2e9, 2e9]
//   - Stack: operand/operator stack overflow or underflow
//
// Example Usage:
//
//	n, err := expr.Calculate("(2+3)*4", expr.ModeInteger)
//	if err != nil {
//		os.Exit(expr.ExitCode(expr.KindOf(err)))
//	}
//	fmt.Println(n) // 20
package expr
