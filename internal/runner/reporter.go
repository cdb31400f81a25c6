package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// DefaultWidth is the report width when the output is not a terminal.
const DefaultWidth = 96

// Reporter writes benchmark results as a table.
type Reporter struct {
	output io.Writer
	width  int
}

// NewReporter creates a Reporter. When output is a terminal the rule
// width follows the terminal, capped at DefaultWidth.
func NewReporter(output io.Writer) *Reporter {
	return &Reporter{output: output, width: outputWidth(output)}
}

func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 || cols > DefaultWidth {
		return DefaultWidth
	}
	return cols
}

// Report writes a header, one row per result and a summary.
func (r *Reporter) Report(results []Result) {
	rule := strings.Repeat("─", r.width)

	fmt.Fprintf(r.output, "%-22s %-10s %10s %12s %12s %12s %14s\n",
		"subject", "mode", "iters", "avg", "min", "max", "ops/sec")
	fmt.Fprintln(r.output, rule)

	passed, failed := 0, 0
	for _, res := range results {
		if res.Success {
			passed++
		} else {
			failed++
		}
		fmt.Fprintf(r.output, "%-22s %-10s %10d %12s %12s %12s %14.0f\n",
			res.Subject.Name, res.Subject.Mode, res.Iterations,
			formatDuration(res.AvgTime), formatDuration(res.MinTime), formatDuration(res.MaxTime),
			res.OpsPerSecond)
		if res.Err != nil {
			fmt.Fprintf(r.output, "  error: %v\n", res.Err)
		}
	}

	fmt.Fprintln(r.output, rule)
	fmt.Fprintf(r.output, "Total: %d  Success: %d  Failed: %d\n", len(results), passed, failed)
}

// List writes one line per subject.
func (r *Reporter) List(subjects []Subject) {
	for _, s := range subjects {
		fmt.Fprintf(r.output, "%-22s %-10s %s\n", s.Name, s.Group, s.Mode)
	}
}

// formatDuration formats a duration with a unit suited to its size.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
