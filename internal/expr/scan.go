package expr

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isSpace matches the C locale isspace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

// scanLiteral returns the end offset of the numeric literal starting at
// input[start], which must be a digit. Integer mode consumes a digit run.
// Float mode additionally consumes a fraction and an exponent, the latter
// only when at least one exponent digit follows.
func scanLiteral(input string, start int, mode Mode) int {
	i := start
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if mode != ModeFloat {
		return i
	}

	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}

	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			i = j
		}
	}
	return i
}
