package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInteger(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"single literal", "42", 42},
		{"left associative subtraction", "10-2-3", 5},
		{"left associative division", "100/10/5", 2},
		{"precedence", "2+3*4", 14},
		{"parentheses override precedence", "(2+3)*4", 20},
		{"nested parentheses", "((1+2)*(3+4))-1", 20},
		{"whitespace ignored", " 2 *\t( 3 + 4 ) * 5 \n", 70},
		{"truncating division", "7/2", 3},
		{"truncation toward zero", "0-7/2", -3},
		{"negative result", "3-10", -7},
		{"upper bound literal", "2000000000", 2000000000},
		{"redundant parentheses", "(((7)))", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input, ModeInteger)
			require.NoError(t, err)
			assert.Equal(t, ModeInteger, got.Mode())
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestCalculateFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fraction literal", "1.5*2", "3.0000"},
		{"integer literals", "1/3", "0.3333"},
		{"trailing dot", "5.+1", "6.0000"},
		{"exponent", "1e3/8", "125.0000"},
		{"signed exponent", "25e-1*2", "5.0000"},
		{"divisor just outside epsilon band", "1/0.0001", "10000.0000"},
		{"precedence", "0.5+0.25*2", "1.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input, ModeFloat)
			require.NoError(t, err)
			assert.Equal(t, ModeFloat, got.Mode())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		kind  Kind
	}{
		{"integer division by zero", "5/0", ModeInteger, KindDivisionByZero},
		{"division by folded zero", "5/(3-3)", ModeInteger, KindDivisionByZero},
		{"float divisor inside epsilon band", "5/0.00001", ModeFloat, KindDivisionByZero},
		{"float zero divisor", "1/0", ModeFloat, KindDivisionByZero},
		{"result above range", "1999999999+1999999999", ModeInteger, KindRange},
		{"result below range", "1-2000000000-2000000000", ModeInteger, KindRange},
		{"literal above range", "2000000001", ModeInteger, KindRange},
		{"literal overflows int64", "99999999999999999999", ModeInteger, KindRange},
		{"float sum above range", "2e9+1", ModeFloat, KindRange},
		{"float literal overflows", "1e400", ModeFloat, KindRange},
		{"product above range", "50000*50000", ModeInteger, KindRange},
		{"decimal point in integer mode", "3.14", ModeInteger, KindValidation},
		{"leading operator", "+5", ModeInteger, KindValidation},
		{"trailing operator", "5+", ModeInteger, KindValidation},
		{"adjacent numbers", "5 5", ModeInteger, KindValidation},
		{"unclosed parenthesis", "(5+3", ModeInteger, KindValidation},
		{"unopened parenthesis", "5+3)", ModeInteger, KindValidation},
		{"unknown character", "5a", ModeInteger, KindValidation},
		{"empty input", "", ModeInteger, KindValidation},
		{"blank input", "   \n", ModeFloat, KindValidation},
		{"double fraction", "1.5.2", ModeFloat, KindValidation},
		{"dangling exponent", "2e", ModeFloat, KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.input, tt.mode)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts well formed input", func(t *testing.T) {
		for _, input := range []string{"1", "1+2", "(1)", "((1+2)*3)/4", " 1 + 2 \n"} {
			assert.NoError(t, Validate(input, ModeInteger), input)
		}
	})

	t.Run("float literals accepted in float mode only", func(t *testing.T) {
		assert.NoError(t, Validate("1.25*4", ModeFloat))
		assert.NoError(t, Validate("1e+5-3", ModeFloat))
		assert.Error(t, Validate("1.25*4", ModeInteger))
		assert.Error(t, Validate("1e5", ModeInteger))
	})

	t.Run("reports offset and reason", func(t *testing.T) {
		err := Validate("5 5", ModeInteger)
		var syn *SyntaxError
		require.True(t, errors.As(err, &syn))
		assert.Equal(t, 2, syn.Offset)
		assert.Equal(t, "unexpected number", syn.Reason)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unmatched close parenthesis", func(t *testing.T) {
		err := Validate("(1))", ModeInteger)
		var syn *SyntaxError
		require.True(t, errors.As(err, &syn))
		assert.Equal(t, 3, syn.Offset)
	})

	t.Run("operator after open parenthesis", func(t *testing.T) {
		assert.Error(t, Validate("(*2)", ModeInteger))
		assert.Error(t, Validate("()", ModeInteger))
		assert.Error(t, Validate("2(3)", ModeInteger))
		assert.Error(t, Validate("(2)3", ModeInteger))
	})
}

func TestEvaluateUnvalidatedInput(t *testing.T) {
	e := New()

	tests := []struct {
		input string
		kind  Kind
	}{
		{"5 5", KindValidation},
		{"(5", KindValidation},
		{")", KindStack},
		{"5+", KindStack},
		{"*", KindStack},
		{"5x", KindValidation},
		{"", KindStack},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := e.Evaluate(tt.input)
				assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
			})
		})
	}
}

func TestStackExhaustion(t *testing.T) {
	e := New(WithStackCapacity(4))

	_, err := e.Calculate(strings.Repeat("(", 6) + "1" + strings.Repeat(")", 6))
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, KindStack, KindOf(err))

	got, err := e.Calculate("((1+2))")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Int64())
}

func TestCalculateIsDeterministic(t *testing.T) {
	e := New(WithMode(ModeFloat))
	input := "(1.5+2.25)*4/3-0.5"

	first, err := e.Calculate(input)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.Calculate(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "4.5000", first.String())
}
