package expr

import (
	"fmt"
	"strconv"
)

// Mode selects integer or floating-point arithmetic for one evaluation
type Mode int

const (
	ModeInteger Mode = iota
	ModeFloat
)

// String returns the mode name used in configs and API payloads
func (m Mode) String() string {
	switch m {
	case ModeInteger:
		return "int"
	case ModeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseMode converts "int"/"integer" or "float" into a Mode.
// An empty string yields ModeInteger.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "int", "integer":
		return ModeInteger, nil
	case "float":
		return ModeFloat, nil
	default:
		return ModeInteger, fmt.Errorf("unknown numeric mode %q", s)
	}
}

// Number is a scalar tagged with the mode it was produced in.
type Number struct {
	mode Mode
	i    int64
	f    float64
}

// Int creates an integer-mode number
func Int(v int64) Number {
	return Number{mode: ModeInteger, i: v}
}

// Float creates a float-mode number
func Float(v float64) Number {
	return Number{mode: ModeFloat, f: v}
}

func (n Number) Mode() Mode { return n.mode }

// Int64 returns the integer value; float numbers are truncated.
func (n Number) Int64() int64 {
	if n.mode == ModeFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns the value as a float64 regardless of mode.
func (n Number) Float64() float64 {
	if n.mode == ModeFloat {
		return n.f
	}
	return float64(n.i)
}

// String formats integers in base 10 and floats with four decimals.
func (n Number) String() string {
	if n.mode == ModeFloat {
		return strconv.FormatFloat(n.f, 'f', 4, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

const (
	// MaxValue and MinValue bound every literal and intermediate result.
	MaxValue = 2_000_000_000
	MinValue = -2_000_000_000

	// divisionEpsilon is the half-width of the band around zero that float
	// division rejects.
	divisionEpsilon = 1e-4
)

// checkRange reports ErrOutOfRange when n lies outside [MinValue, MaxValue].
func checkRange(n Number) error {
	v := n.Float64()
	if v > MaxValue || v < MinValue || v != v {
		return fmt.Errorf("%w: %s", ErrOutOfRange, n)
	}
	return nil
}
