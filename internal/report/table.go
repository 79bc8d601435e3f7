package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Suite: %s ===\n\n", r.Meta.Suite)
	writeCaseTable(tw, r)
	writeSummary(tw, r)

	tw.Flush()
}

func writeCaseTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Cases (%d runs each)\n\n", r.Meta.Runs)

	header := []string{"Case", "Expression", "Expected", "Actual", "p50", "p95", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, e := range r.Cases {
		status := "PASS"
		if !e.Passed {
			status = "FAIL"
		}
		row := []string{
			e.CaseID,
			quote(e.Expression),
			e.Expected,
			e.Actual,
			fmtDuration(e.Latency.P50),
			fmtDuration(e.Latency.P95),
			status,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeSummary(tw *tabwriter.Writer, r *Report) {
	s := r.Summary
	fmt.Fprintf(tw, "Passed %d/%d, failed %d\n\n", s.Passed, s.Total, s.Failed)

	header := []string{"Min", "p50", "p95", "Max", "Mean", "Samples"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	l := s.Latency
	row := []string{
		fmtDuration(l.Min),
		fmtDuration(l.P50),
		fmtDuration(l.P95),
		fmtDuration(l.Max),
		fmtDuration(l.Mean),
		fmt.Sprintf("%d", l.SampleCount),
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))
	fmt.Fprintln(tw)
}

func separator(n int) string {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	return strings.Join(sep, "\t")
}

// quote keeps empty and whitespace-bearing expressions visible in the table.
func quote(expr string) string {
	return fmt.Sprintf("%q", expr)
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
