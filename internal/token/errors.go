package token

import (
	"errors"
	"fmt"
)

// ErrEndOnInfixSymbol is returned when the input is empty or its last
// character is an operator.
var ErrEndOnInfixSymbol = errors.New("expression ended on an infix symbol")

// BadTokenError reports the first character that is neither a digit nor an operator.
type BadTokenError struct {
	Token  rune
	Offset int
}

func (e *BadTokenError) Error() string {
	return fmt.Sprintf("invalid token %q at offset %d", e.Token, e.Offset)
}

// IsTokenizationError reports whether err, or an error it wraps, came from Tokenize.
func IsTokenizationError(err error) bool {
	if errors.Is(err, ErrEndOnInfixSymbol) {
		return true
	}
	var bt *BadTokenError
	return errors.As(err, &bt)
}
