package suite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/calc"
	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/google/uuid"
)

// Outcome is what one evaluation of a case produced.
type Outcome struct {
	Value   *int64           `json:"value,omitempty"`
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message,omitempty"`
}

func (o Outcome) String() string {
	if o.Value != nil {
		return strconv.FormatInt(*o.Value, 10)
	}
	if o.Kind != "" {
		return fmt.Sprintf("error(%s)", o.Kind)
	}
	return "error"
}

type CaseResult struct {
	Case    Case
	Actual  Outcome
	Passed  bool
	Latency LatencyStats
	// Err is set when the case could not be judged, e.g. history failed.
	Err error
}

type Result struct {
	RunID     uuid.UUID
	Suite     *Suite
	StartedAt time.Time
	Duration  time.Duration
	Cases     []CaseResult
}

func (r *Result) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}

func (r *Result) Failed() int {
	return len(r.Cases) - r.Passed()
}

type Runner struct {
	service *calc.Service
}

func NewRunner(service *calc.Service) *Runner {
	return &Runner{service: service}
}

// Run evaluates every case s.Runs times. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, s *Suite) (*Result, error) {
	runs := s.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}

	res := &Result{
		RunID:     uuid.New(),
		Suite:     s,
		StartedAt: time.Now().UTC(),
		Cases:     make([]CaseResult, 0, len(s.Cases)),
	}

	slog.Info("Running suite", "suite", s.Name, "cases", len(s.Cases), "runs", runs, "run_id", res.RunID)

	for _, c := range s.Cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite %q interrupted: %w", s.Name, err)
		}

		cr := r.runCase(ctx, c, runs)
		if !cr.Passed {
			slog.Warn("Case failed", "case", c.ID, "expected", c.Expected(), "actual", cr.Actual.String(), "error", cr.Err)
		}
		res.Cases = append(res.Cases, cr)
	}

	res.Duration = time.Since(res.StartedAt)
	return res, nil
}

func (r *Runner) runCase(ctx context.Context, c Case, runs int) CaseResult {
	cr := CaseResult{Case: c}
	latencies := make([]time.Duration, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		ev, err := r.service.Evaluate(ctx, c.Expression)
		latencies = append(latencies, time.Since(start))

		if errors.Is(err, calc.ErrHistory) {
			cr.Err = err
		}
		cr.Actual = outcomeOf(ev)
	}

	cr.Latency = ComputeLatencyStats(latencies)
	cr.Passed = cr.Err == nil && matches(c, cr.Actual)
	return cr
}

func outcomeOf(ev *domain.Evaluation) Outcome {
	if ev.Succeeded() {
		v := *ev.Result
		return Outcome{Value: &v}
	}
	if ev.Failure == nil {
		return Outcome{}
	}
	return Outcome{Kind: ev.Failure.Kind, Message: ev.Failure.Message}
}

func matches(c Case, o Outcome) bool {
	if c.Expect != nil {
		return o.Value != nil && *o.Value == *c.Expect
	}
	return o.Value == nil && o.Kind == c.ExpectError
}
