package eval

import (
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/infix-calc/internal/token"
)

var (
	// ErrSymbolValueMismatch is returned when an operator lacks an operand or
	// no value was produced at all.
	ErrSymbolValueMismatch = errors.New("symbol-value mismatch")

	ErrDivideByZero = errors.New("divide by zero")
)

// UnknownSymbolError is returned for a symbol token carrying an operator
// outside Add, Subtract, Multiply and Divide.
type UnknownSymbolError struct {
	Symbol token.Operator
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %d", uint8(e.Symbol))
}

// TrailingSymbolsOrValuesError reports what was left on the stacks after the
// final value was taken.
type TrailingSymbolsOrValuesError struct {
	LeftoverSymbols int
	LeftoverValues  int
}

func (e *TrailingSymbolsOrValuesError) Error() string {
	return fmt.Sprintf("imbalanced expression: %d leftover symbols, %d leftover values", e.LeftoverSymbols, e.LeftoverValues)
}

// IsEvaluationError reports whether err, or an error it wraps, came from Evaluate.
func IsEvaluationError(err error) bool {
	if errors.Is(err, ErrSymbolValueMismatch) || errors.Is(err, ErrDivideByZero) {
		return true
	}
	var us *UnknownSymbolError
	if errors.As(err, &us) {
		return true
	}
	var ts *TrailingSymbolsOrValuesError
	return errors.As(err, &ts)
}
