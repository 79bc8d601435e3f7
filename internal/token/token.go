package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operator is one of the four infix arithmetic operators.
//
// Usage:
//
//	op, ok := token.OperatorFor('*')  // token.Multiply, true
//	op.Precedence()                   // 2
type Operator uint8

const (
	// Invalid is the zero value and never produced by Tokenize.
	Invalid Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// Operators lists the valid operators in declaration order.
var Operators = []Operator{Add, Subtract, Multiply, Divide}

// OperatorFor maps an operator character to its Operator.
func OperatorFor(r rune) (Operator, bool) {
	switch r {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	default:
		return Invalid, false
	}
}

// Precedence returns the binding rank of the operator; higher binds tighter.
// Unknown operators rank 0.
func (o Operator) Precedence() uint8 {
	switch o {
	case Add, Subtract:
		return 1
	case Multiply, Divide:
		return 2
	default:
		return 0
	}
}

// Symbol returns the character the operator is written with, or '?' when unknown.
func (o Operator) Symbol() rune {
	switch o {
	case Add:
		return '+'
	case Subtract:
		return '-'
	case Multiply:
		return '*'
	case Divide:
		return '/'
	default:
		return '?'
	}
}

func (o Operator) String() string {
	return string(o.Symbol())
}

// Valid reports whether o is one of Add, Subtract, Multiply or Divide.
func (o Operator) Valid() bool {
	return o.Precedence() > 0
}

// unknownPrefix marks the numeric form of an operator outside the four
// arithmetic ones, e.g. "#42".
const unknownPrefix = "#"

// MarshalText encodes valid operators by their symbol and any other code as
// "#<code>", so a recorded expression with an unknown symbol stays readable.
func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return []byte(unknownPrefix + strconv.FormatUint(uint64(o), 10)), nil
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts the forms produced by MarshalText.
func (o *Operator) UnmarshalText(text []byte) error {
	if code, ok := strings.CutPrefix(string(text), unknownPrefix); ok {
		n, err := strconv.ParseUint(code, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid operator code: %q", text)
		}
		*o = Operator(n)
		return nil
	}

	runes := []rune(string(text))
	if len(runes) != 1 {
		return fmt.Errorf("invalid operator: %q (must be one of '+', '-', '*', '/')", text)
	}
	op, ok := OperatorFor(runes[0])
	if !ok {
		return fmt.Errorf("invalid operator: %q (must be one of '+', '-', '*', '/')", text)
	}
	*o = op
	return nil
}

type Kind uint8

const (
	KindValue Kind = iota
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "VALUE"
	case KindSymbol:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// Token is either a literal operand (KindValue) or an operator (KindSymbol).
// Only the field matching Kind is meaningful.
type Token struct {
	Kind     Kind
	Value    int64
	Operator Operator
}

func NewValue(v int64) Token {
	return Token{Kind: KindValue, Value: v}
}

func NewSymbol(op Operator) Token {
	return Token{Kind: KindSymbol, Operator: op}
}

func (t Token) IsValue() bool  { return t.Kind == KindValue }
func (t Token) IsSymbol() bool { return t.Kind == KindSymbol }

// String renders the token as Value(123) or Symbol(+).
func (t Token) String() string {
	if t.Kind == KindSymbol {
		return "Symbol(" + t.Operator.String() + ")"
	}
	return "Value(" + strconv.FormatInt(t.Value, 10) + ")"
}

type tokenJSON struct {
	Value  *int64    `json:"value,omitempty"`
	Symbol *Operator `json:"symbol,omitempty"`
}

// MarshalJSON encodes a value token as {"value":123} and a symbol token as {"symbol":"+"}.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.Kind == KindSymbol {
		op := t.Operator
		return json.Marshal(tokenJSON{Symbol: &op})
	}
	v := t.Value
	return json.Marshal(tokenJSON{Value: &v})
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var raw tokenJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Symbol != nil && raw.Value == nil:
		*t = NewSymbol(*raw.Symbol)
	case raw.Value != nil && raw.Symbol == nil:
		*t = NewValue(*raw.Value)
	default:
		return errors.New("token must have exactly one of value or symbol")
	}
	return nil
}
