package dto

import (
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	"github.com/google/uuid"
)

// ExpressionRequest is the body of the tokenize and evaluate endpoints.
type ExpressionRequest struct {
	Expression string `json:"expression" example:"1+2*3-4"`
}

// Token is the wire form of token.Token.
type Token struct {
	Type     string `json:"type" enums:"value,symbol"`
	Value    *int64 `json:"value,omitempty"`
	Operator string `json:"operator,omitempty" enums:"+,-,*,/"`
}

type TokenizeResponse struct {
	Expression string  `json:"expression"`
	Tokens     []Token `json:"tokens"`
}

type FailureResponse struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type EvaluationResponse struct {
	ID         uuid.UUID        `json:"id"`
	Expression string           `json:"expression"`
	Tokens     []Token          `json:"tokens,omitempty"`
	Result     *int64           `json:"result,omitempty"`
	Failure    *FailureResponse `json:"failure,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func FromTokens(tokens []token.Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.IsSymbol() {
			out = append(out, Token{Type: "symbol", Operator: t.Operator.String()})
			continue
		}
		v := t.Value
		out = append(out, Token{Type: "value", Value: &v})
	}
	return out
}

func FromEvaluation(ev domain.Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:         ev.ID,
		Expression: ev.Expression,
		Result:     ev.Result,
		CreatedAt:  ev.CreatedAt,
	}
	if len(ev.Tokens) > 0 {
		resp.Tokens = FromTokens(ev.Tokens)
	}
	if f := ev.Failure; f != nil {
		resp.Failure = &FailureResponse{
			Stage:   string(f.Stage),
			Kind:    string(f.Kind),
			Message: f.Message,
		}
	}
	return resp
}
