package domain

import (
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	"github.com/google/uuid"
)

// Stage names the step of the pipeline that rejected an expression.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageEvaluate Stage = "evaluate"
)

// ErrorKind is a stable, machine readable name for a rejected expression.
type ErrorKind string

const (
	KindEndOnInfixSymbol        ErrorKind = "end_on_infix_symbol"
	KindBadToken                ErrorKind = "bad_token"
	KindSymbolValueMismatch     ErrorKind = "symbol_value_mismatch"
	KindDivideByZero            ErrorKind = "divide_by_zero"
	KindUnknownSymbol           ErrorKind = "unknown_symbol"
	KindTrailingSymbolsOrValues ErrorKind = "trailing_symbols_or_values"
)

var errorKindStages = map[ErrorKind]Stage{
	KindEndOnInfixSymbol:        StageTokenize,
	KindBadToken:                StageTokenize,
	KindSymbolValueMismatch:     StageEvaluate,
	KindDivideByZero:            StageEvaluate,
	KindUnknownSymbol:           StageEvaluate,
	KindTrailingSymbolsOrValues: StageEvaluate,
}

// Stage returns the pipeline stage the kind belongs to.
func (k ErrorKind) Stage() Stage {
	return errorKindStages[k]
}

func (k ErrorKind) Valid() bool {
	_, ok := errorKindStages[k]
	return ok
}

// Evaluation is one recorded calculation. Exactly one of Result and Failure is set.
type Evaluation struct {
	ID         uuid.UUID     `json:"id"`
	Expression string        `json:"expression"`
	Tokens     []token.Token `json:"tokens,omitempty"`
	Result     *int64        `json:"result,omitempty"`
	Failure    *Failure      `json:"failure,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type Failure struct {
	Stage   Stage     `json:"stage"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Evaluation) Succeeded() bool {
	return e.Failure == nil && e.Result != nil
}
