// Package calc wires the tokenizer and the evaluator into a calculator
// service that records every evaluation in an optional history store.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/eval"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	"github.com/google/uuid"
)

// ErrHistory marks a failure to record an evaluation. It is joined with the
// expression error, if any, so both stay visible to errors.Is / errors.As.
var ErrHistory = errors.New("history")

type Service struct {
	tokenizer token.Tokenizer
	evaluator eval.Evaluator
	storer    storage.Storer
	now       func() time.Time
}

type Option func(*Service)

func WithTokenizer(t token.Tokenizer) Option {
	return func(s *Service) { s.tokenizer = t }
}

func WithEvaluator(e eval.Evaluator) Option {
	return func(s *Service) { s.evaluator = e }
}

// WithStorer enables history. A nil storer keeps history disabled.
func WithStorer(st storage.Storer) Option {
	return func(s *Service) { s.storer = st }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(opts ...Option) *Service {
	s := &Service{
		tokenizer: token.Default,
		evaluator: eval.Default,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Tokenize(expression string) ([]token.Token, error) {
	return s.tokenizer.Tokenize(expression)
}

// Calculate tokenizes and evaluates expression without recording it.
func (s *Service) Calculate(expression string) (int64, error) {
	tokens, err := s.tokenizer.Tokenize(expression)
	if err != nil {
		return 0, err
	}
	return s.evaluator.Evaluate(tokens)
}

// Evaluate computes expression and records the outcome. The returned
// Evaluation is never nil; on an expression error it carries the Failure and
// the error is returned unchanged.
func (s *Service) Evaluate(ctx context.Context, expression string) (*domain.Evaluation, error) {
	ev := &domain.Evaluation{
		ID:         uuid.New(),
		Expression: expression,
		CreatedAt:  s.now().UTC().Truncate(time.Microsecond),
	}

	calcErr := s.compute(ev)
	if calcErr != nil {
		slog.Debug("Expression rejected", "expression", expression, "error", calcErr)
	}

	if s.storer == nil {
		return ev, calcErr
	}

	if _, err := s.storer.Save(ctx, *ev); err != nil {
		slog.Error("Failed to record evaluation", "id", ev.ID, "error", err)
		return ev, errors.Join(calcErr, fmt.Errorf("%w: %w", ErrHistory, err))
	}

	return ev, calcErr
}

func (s *Service) compute(ev *domain.Evaluation) error {
	tokens, err := s.tokenizer.Tokenize(ev.Expression)
	if err != nil {
		ev.Failure = failureAt(domain.StageTokenize, err)
		return err
	}
	ev.Tokens = tokens

	result, err := s.evaluator.Evaluate(tokens)
	if err != nil {
		ev.Failure = failureAt(domain.StageEvaluate, err)
		return err
	}
	ev.Result = &result
	return nil
}

// failureAt keeps errors from injected tokenizers or evaluators that Classify
// does not know, attributing them to the stage that produced them.
func failureAt(stage domain.Stage, err error) *domain.Failure {
	if f := NewFailure(err); f != nil {
		return f
	}
	return &domain.Failure{Stage: stage, Message: err.Error()}
}
