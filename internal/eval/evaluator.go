// Package eval reduces an infix token stream to a single integer.
//
// Evaluation uses two explicit stacks, one for operand values and one for
// deferred operators. An incoming operator first reduces every stacked
// operator of greater or equal precedence, which yields left associativity
// and keeps the operator stack strictly increasing in precedence from bottom
// to top.
package eval

import "github.com/DjordjeVuckovic/infix-calc/internal/token"

// Evaluator reduces a token sequence to its value.
type Evaluator interface {
	Evaluate(tokens []token.Token) (int64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(tokens []token.Token) (int64, error)

func (f EvaluatorFunc) Evaluate(tokens []token.Token) (int64, error) {
	return f(tokens)
}

// Default is the two-stack evaluator backed by Evaluate.
var Default Evaluator = EvaluatorFunc(Evaluate)

// Evaluate computes the value of tokens honoring precedence and left
// associativity. Arithmetic wraps on int64 overflow; division truncates
// toward zero.
func Evaluate(tokens []token.Token) (int64, error) {
	s := &stacks{
		values: make([]int64, 0, len(tokens)/2+1),
	}

	for _, tok := range tokens {
		if tok.IsValue() {
			s.values = append(s.values, tok.Value)
			continue
		}

		for len(s.ops) > 0 && s.topOp().Precedence() >= tok.Operator.Precedence() {
			if err := s.apply(); err != nil {
				return 0, err
			}
		}
		s.ops = append(s.ops, tok.Operator)
	}

	for len(s.ops) > 0 {
		if err := s.apply(); err != nil {
			return 0, err
		}
	}

	result, ok := s.popValue()
	if len(s.values) > 0 || len(s.ops) > 0 {
		return 0, &TrailingSymbolsOrValuesError{
			LeftoverSymbols: len(s.ops),
			LeftoverValues:  len(s.values),
		}
	}
	if !ok {
		return 0, ErrSymbolValueMismatch
	}

	return result, nil
}

type stacks struct {
	values []int64
	ops    []token.Operator
}

func (s *stacks) topOp() token.Operator {
	return s.ops[len(s.ops)-1]
}

func (s *stacks) popValue() (int64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

// apply pops the top operator and its two operands and pushes the result.
// The caller guarantees the operator stack is non-empty.
func (s *stacks) apply() error {
	second, ok := s.popValue()
	if !ok {
		return ErrSymbolValueMismatch
	}
	first, ok := s.popValue()
	if !ok {
		return ErrSymbolValueMismatch
	}

	op := s.topOp()
	s.ops = s.ops[:len(s.ops)-1]

	var result int64
	switch op {
	case token.Add:
		result = first + second
	case token.Subtract:
		result = first - second
	case token.Multiply:
		result = first * second
	case token.Divide:
		if second == 0 {
			return ErrDivideByZero
		}
		result = first / second
	default:
		return &UnknownSymbolError{Symbol: op}
	}

	s.values = append(s.values, result)
	return nil
}
