package expr

import (
	"errors"
	"fmt"
)

var (
	ErrRead           = errors.New("error reading input")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOutOfRange     = errors.New("number out of range")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Kind classifies a terminal evaluation failure
type Kind int

const (
	KindNone Kind = iota
	KindRead
	KindValidation
	KindDivisionByZero
	KindRange
	KindStack
)

// String returns the kind name exposed in API error payloads
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRead:
		return "read_error"
	case KindValidation:
		return "validation_error"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindRange:
		return "range_error"
	case KindStack:
		return "stack_exhaustion"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names yield KindNone.
func ParseKind(s string) Kind {
	for k := KindRead; k <= KindStack; k++ {
		if k.String() == s {
			return k
		}
	}
	return KindNone
}

// Sentinel returns the sentinel error for k, or nil for KindNone.
func (k Kind) Sentinel() error {
	switch k {
	case KindRead:
		return ErrRead
	case KindValidation:
		return ErrInvalidInput
	case KindDivisionByZero:
		return ErrDivisionByZero
	case KindRange:
		return ErrOutOfRange
	case KindStack:
		return ErrStackOverflow
	default:
		return nil
	}
}

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrRead):
		return KindRead
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrOutOfRange):
		return KindRange
	case errors.Is(err, ErrStackOverflow), errors.Is(err, ErrStackUnderflow):
		return KindStack
	default:
		return KindNone
	}
}

// ExitFailure is the exit status for failures outside the error kinds.
const ExitFailure = 6

// ExitCode maps a kind to the process exit status used by the CLI.
//
//	0 success
//	1 division by zero
//	2 malformed expression
//	3 input read failure
//	4 number out of range
//	5 stack overflow/underflow
//	6 anything else (ExitFailure)
func ExitCode(k Kind) int {
	switch k {
	case KindNone:
		return 0
	case KindDivisionByZero:
		return 1
	case KindValidation:
		return 2
	case KindRead:
		return 3
	case KindRange:
		return 4
	case KindStack:
		return 5
	default:
		return ExitFailure
	}
}

// SyntaxError describes why an expression was rejected
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", ErrInvalidInput, e.Reason, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrInvalidInput }

func syntaxError(offset int, reason string) error {
	return &SyntaxError{Offset: offset, Reason: reason}
}
