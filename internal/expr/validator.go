package expr

import "fmt"

// Validate checks the structure of input before evaluation.
//
// The scan tracks whether the previous significant token was operator-like
// (an operator, '(' or the start of input) and the parenthesis balance.
// Literals and '(' must follow an operator-like token; operators and ')'
// must not. In float mode decimal points and exponents are accepted as part
// of a literal.
func Validate(input string, mode Mode) error {
	balance := 0
	lastWasOp := true

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case isSpace(c):
			continue
		case isDigit(c):
			if !lastWasOp {
				return syntaxError(i, "unexpected number")
			}
			i = scanLiteral(input, i, mode) - 1
			lastWasOp = false
		case isOperator(c):
			if lastWasOp {
				return syntaxError(i, "unexpected operator "+string(c))
			}
			lastWasOp = true
		case c == '(':
			if !lastWasOp {
				return syntaxError(i, "unexpected '('")
			}
			balance++
			lastWasOp = true
		case c == ')':
			if lastWasOp {
				return syntaxError(i, "unexpected ')'")
			}
			if balance == 0 {
				return syntaxError(i, "unmatched ')'")
			}
			balance--
			lastWasOp = false
		default:
			return syntaxError(i, fmt.Sprintf("unexpected character %q", c))
		}
	}

	if lastWasOp {
		return syntaxError(len(input), "expression is incomplete")
	}
	if balance != 0 {
		return syntaxError(len(input), "unbalanced parentheses")
	}
	return nil
}
