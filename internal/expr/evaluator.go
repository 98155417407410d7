package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// leftParen marks an open group on the operator stack.
const leftParen byte = '('

// priority returns the precedence class of op; the left parenthesis marker
// and unknown bytes rank 0 so they never trigger a fold.
func priority(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithMode selects integer or float arithmetic
func WithMode(mode Mode) Option {
	return func(e *Evaluator) { e.mode = mode }
}

// WithStackCapacity bounds the operand and operator stacks
func WithStackCapacity(capacity int) Option {
	return func(e *Evaluator) {
		if capacity > 0 {
			e.capacity = capacity
		}
	}
}

// Evaluator computes expressions with a fixed mode and stack capacity.
// It holds no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	mode     Mode
	capacity int
}

// New creates an evaluator; integer mode and DefaultStackCapacity by default
func New(opts ...Option) *Evaluator {
	e := &Evaluator{mode: ModeInteger, capacity: DefaultStackCapacity}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Mode() Mode { return e.mode }

// Calculate validates input and then evaluates it
func (e *Evaluator) Calculate(input string) (Number, error) {
	if err := Validate(input, e.mode); err != nil {
		return Number{}, err
	}
	return e.Evaluate(input)
}

// Calculate validates and evaluates input with a default evaluator in mode.
func Calculate(input string, mode Mode) (Number, error) {
	return New(WithMode(mode)).Calculate(input)
}

// Evaluate computes input, which is expected to have passed Validate.
// Malformed input still produces an error rather than a panic.
func (e *Evaluator) Evaluate(input string) (Number, error) {
	m := machine{
		mode:   e.mode,
		values: NewStack[Number](e.capacity),
		ops:    NewStack[byte](e.capacity),
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case isSpace(c):
			continue
		case isDigit(c):
			end := scanLiteral(input, i, e.mode)
			n, err := parseLiteral(input[i:end], e.mode)
			if err != nil {
				return Number{}, err
			}
			if err := m.values.Push(n); err != nil {
				return Number{}, err
			}
			i = end - 1
		case c == leftParen:
			if err := m.ops.Push(leftParen); err != nil {
				return Number{}, err
			}
		case c == ')':
			if err := m.closeGroup(); err != nil {
				return Number{}, err
			}
		case isOperator(c):
			if err := m.foldWhile(priority(c)); err != nil {
				return Number{}, err
			}
			if err := m.ops.Push(c); err != nil {
				return Number{}, err
			}
		default:
			return Number{}, syntaxError(i, fmt.Sprintf("unexpected character %q", c))
		}
	}

	for !m.ops.IsEmpty() {
		op, _ := m.ops.Peek()
		if op == leftParen {
			return Number{}, syntaxError(len(input), "unbalanced parentheses")
		}
		if err := m.apply(); err != nil {
			return Number{}, err
		}
	}

	result, err := m.values.Pop()
	if err != nil {
		return Number{}, err
	}
	if n := m.values.Len(); n > 0 {
		return Number{}, syntaxError(len(input), fmt.Sprintf("missing operator, %d operands left over", n+1))
	}
	return result, nil
}

// machine holds the two stacks of a single evaluation.
type machine struct {
	mode   Mode
	values *Stack[Number]
	ops    *Stack[byte]
}

// foldWhile applies pending operators whose priority is at least p.
// Equal priority folds too, which makes evaluation left-associative.
func (m *machine) foldWhile(p int) error {
	for !m.ops.IsEmpty() {
		top, _ := m.ops.Peek()
		if priority(top) < p {
			return nil
		}
		if err := m.apply(); err != nil {
			return err
		}
	}
	return nil
}

// closeGroup folds back to the nearest left parenthesis and discards it.
func (m *machine) closeGroup() error {
	for {
		top, err := m.ops.Peek()
		if err != nil {
			return err
		}
		if top == leftParen {
			_, err = m.ops.Pop()
			return err
		}
		if err := m.apply(); err != nil {
			return err
		}
	}
}

// apply pops one operator and two operands and pushes the result.
func (m *machine) apply() error {
	op, err := m.ops.Pop()
	if err != nil {
		return err
	}
	b, err := m.values.Pop()
	if err != nil {
		return err
	}
	a, err := m.values.Pop()
	if err != nil {
		return err
	}
	res, err := compute(a, b, op, m.mode)
	if err != nil {
		return err
	}
	return m.values.Push(res)
}

func parseLiteral(lit string, mode Mode) (Number, error) {
	var n Number
	if mode == ModeFloat {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Number{}, fmt.Errorf("%w: malformed number %q", ErrInvalidInput, lit)
		}
		n = Float(v)
	} else {
		v, err := strconv.ParseInt(lit, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return Number{}, fmt.Errorf("%w: %s", ErrOutOfRange, lit)
		}
		if err != nil {
			return Number{}, fmt.Errorf("%w: malformed number %q", ErrInvalidInput, lit)
		}
		n = Int(v)
	}
	if err := checkRange(n); err != nil {
		return Number{}, err
	}
	return n, nil
}

func compute(a, b Number, op byte, mode Mode) (Number, error) {
	var res Number
	if mode == ModeFloat {
		x, y := a.Float64(), b.Float64()
		switch op {
		case '+':
			res = Float(x + y)
		case '-':
			res = Float(x - y)
		case '*':
			res = Float(x * y)
		case '/':
			if y > -divisionEpsilon && y < divisionEpsilon {
				return Number{}, ErrDivisionByZero
			}
			res = Float(x / y)
		default:
			return Number{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, op)
		}
	} else {
		x, y := a.Int64(), b.Int64()
		switch op {
		case '+':
			res = Int(x + y)
		case '-':
			res = Int(x - y)
		case '*':
			res = Int(x * y)
		case '/':
			if y == 0 {
				return Number{}, ErrDivisionByZero
			}
			res = Int(x / y)
		default:
			return Number{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, op)
		}
	}
	if err := checkRange(res); err != nil {
		return Number{}, err
	}
	return res, nil
}
