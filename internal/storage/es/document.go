package es

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	"github.com/google/uuid"
)

// Document represents the document structure for Elasticsearch
type Document struct {
	ID             string        `json:"id"`
	Expression     string        `json:"expression"`
	Tokens         []token.Token `json:"tokens,omitempty"`
	Result         *int64        `json:"result,omitempty"`
	FailureStage   string        `json:"failure_stage,omitempty"`
	FailureKind    string        `json:"failure_kind,omitempty"`
	FailureMessage string        `json:"failure_message,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

func toDocument(ev domain.Evaluation) Document {
	doc := Document{
		ID:         ev.ID.String(),
		Expression: ev.Expression,
		Tokens:     ev.Tokens,
		Result:     ev.Result,
		CreatedAt:  ev.CreatedAt,
	}
	if f := ev.Failure; f != nil {
		doc.FailureStage = string(f.Stage)
		doc.FailureKind = string(f.Kind)
		doc.FailureMessage = f.Message
	}
	return doc
}

func (d Document) toEvaluation() (domain.Evaluation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("failed to parse evaluation ID: %w", err)
	}

	ev := domain.Evaluation{
		ID:         id,
		Expression: d.Expression,
		Tokens:     d.Tokens,
		Result:     d.Result,
		CreatedAt:  d.CreatedAt.UTC(),
	}
	if d.FailureKind != "" || d.FailureMessage != "" {
		ev.Failure = &domain.Failure{
			Stage:   domain.Stage(d.FailureStage),
			Kind:    domain.ErrorKind(d.FailureKind),
			Message: d.FailureMessage,
		}
	}
	return ev, nil
}
