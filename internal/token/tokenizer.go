package token

// Tokenizer interface defines the method for tokenizing input strings.
type Tokenizer interface {
	Tokenize(input string) ([]Token, error)
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(input string) ([]Token, error)

func (f TokenizerFunc) Tokenize(input string) ([]Token, error) {
	return f(input)
}

// Default is the infix tokenizer backed by Tokenize.
var Default Tokenizer = TokenizerFunc(Tokenize)

// Tokenize converts an infix expression into a slice of Tokens.
// Example: Input: `123+4` Output: [Value(123) Symbol(+) Value(4)]
//
// Numbers are maximal runs of ASCII digits and there are no separators, so
// any rune that is neither a digit nor an operator is rejected, whitespace
// included. On success the result is non-empty and ends on a Value.
// Accumulation wraps on int64 overflow.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token

	var acc int64
	building := false

	for offset, ch := range input {
		switch {
		case ch >= '0' && ch <= '9':
			digit := int64(ch - '0')
			if building {
				acc = acc*10 + digit
			} else {
				acc = digit
				building = true
			}
		default:
			op, ok := OperatorFor(ch)
			if !ok {
				return nil, &BadTokenError{Token: ch, Offset: offset}
			}
			if building {
				tokens = append(tokens, NewValue(acc))
				building = false
			}
			tokens = append(tokens, NewSymbol(op))
		}
	}

	if !building {
		return nil, ErrEndOnInfixSymbol
	}

	return append(tokens, NewValue(acc)), nil
}
