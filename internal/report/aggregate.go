package report

import "github.com/DjordjeVuckovic/infix-calc/internal/suite"

// Generate flattens a suite run into a report, keeping case order.
func Generate(res *suite.Result) *Report {
	r := &Report{
		Meta: Meta{
			RunID:       res.RunID,
			Suite:       res.Suite.Name,
			Version:     res.Suite.Version,
			Runs:        res.Suite.Runs,
			Timestamp:   res.StartedAt,
			Duration:    res.Duration,
			Environment: NewEnvironmentInfo(),
		},
		Cases: make([]Entry, 0, len(res.Cases)),
	}

	latencies := make([]suite.LatencyStats, 0, len(res.Cases))
	for _, cr := range res.Cases {
		e := Entry{
			CaseID:     cr.Case.ID,
			Expression: cr.Case.Expression,
			Expected:   cr.Case.Expected(),
			Actual:     cr.Actual.String(),
			Message:    cr.Actual.Message,
			Passed:     cr.Passed,
			Latency:    cr.Latency,
		}
		if cr.Err != nil {
			e.Error = cr.Err.Error()
		}
		r.Cases = append(r.Cases, e)
		latencies = append(latencies, cr.Latency)

		if cr.Passed {
			r.Summary.Passed++
		} else {
			r.Summary.Failed++
		}
	}

	r.Summary.Total = len(r.Cases)
	r.Summary.Latency = suite.AggregateLatencyStats(latencies)
	return r
}
