package calc

import (
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/eval"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
)

// Classify maps an error from the tokenizer or the evaluator to its kind.
// ok is false for any other error.
func Classify(err error) (kind domain.ErrorKind, ok bool) {
	var (
		badToken *token.BadTokenError
		unknown  *eval.UnknownSymbolError
		trailing *eval.TrailingSymbolsOrValuesError
	)

	switch {
	case err == nil:
		return "", false
	case errors.Is(err, token.ErrEndOnInfixSymbol):
		return domain.KindEndOnInfixSymbol, true
	case errors.As(err, &badToken):
		return domain.KindBadToken, true
	case errors.Is(err, eval.ErrSymbolValueMismatch):
		return domain.KindSymbolValueMismatch, true
	case errors.Is(err, eval.ErrDivideByZero):
		return domain.KindDivideByZero, true
	case errors.As(err, &unknown):
		return domain.KindUnknownSymbol, true
	case errors.As(err, &trailing):
		return domain.KindTrailingSymbolsOrValues, true
	default:
		return "", false
	}
}

// NewFailure builds the Failure recorded for an expression error, or nil
// when err is not one.
func NewFailure(err error) *domain.Failure {
	kind, ok := Classify(err)
	if !ok {
		return nil
	}
	return &domain.Failure{
		Stage:   kind.Stage(),
		Kind:    kind,
		Message: Describe(err),
	}
}

// Describe renders an expression error as a sentence for people.
func Describe(err error) string {
	var (
		badToken *token.BadTokenError
		unknown  *eval.UnknownSymbolError
		trailing *eval.TrailingSymbolsOrValuesError
	)

	switch {
	case errors.Is(err, token.ErrEndOnInfixSymbol):
		return "Expression ended on an infix symbol."
	case errors.As(err, &badToken):
		return fmt.Sprintf("Encountered an invalid token: %c", badToken.Token)
	case errors.Is(err, eval.ErrSymbolValueMismatch):
		return "Expression was malformed, a symbol-value mismatch occurred."
	case errors.Is(err, eval.ErrDivideByZero):
		return "Illegal operation: divided by zero"
	case errors.As(err, &unknown):
		return fmt.Sprintf("Unrecognized symbol: %d", uint8(unknown.Symbol))
	case errors.As(err, &trailing):
		return fmt.Sprintf("Imbalanced expression, there are leftover symbols or values. Symbols: %d Values: %d",
			trailing.LeftoverSymbols, trailing.LeftoverValues)
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
