// Package timing instruments a single assemble/send/receive exchange
// with a monotonic wall clock.
package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/logrusorgru/aurora"
)

// Timer measures one request. RecordFirstByte is called when the
// response headers arrive, Finish after the body has been fully
// consumed. A nil *Timer is valid and ignores every call.
type Timer struct {
	start        time.Time
	firstByte    time.Duration
	hasFirstByte bool
	total        time.Duration
	finished     bool
}

func Start() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) RecordFirstByte() {
	if t == nil {
		return
	}
	t.firstByte = time.Since(t.start)
	t.hasFirstByte = true
}

func (t *Timer) Finish() {
	if t == nil {
		return
	}
	t.total = time.Since(t.start)
	t.finished = true
}

// Summary is the derived view of a finished timer. Download time is
// everything after the first byte; when the first byte was never
// recorded only the total is meaningful.
type Summary struct {
	FirstByte    time.Duration
	HasFirstByte bool
	Download     time.Duration
	Total        time.Duration
}

func (t *Timer) Summary() Summary {
	if t == nil || !t.finished {
		return Summary{}
	}
	s := Summary{Total: t.total}
	if t.hasFirstByte {
		s.FirstByte = t.firstByte
		s.HasFirstByte = true
		s.Download = t.total - t.firstByte
	}
	return s
}

// Rating buckets the total time. Thresholds are fixed.
func (s Summary) Rating() string {
	totalMs := durationMs(s.Total)
	switch {
	case totalMs < 100:
		return "Excellent response time!"
	case totalMs < 500:
		return "Good response time"
	case totalMs < 1000:
		return "Slow response"
	default:
		return "Very slow response"
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FormatDuration renders a duration with a unit fitting its size.
func FormatDuration(d time.Duration) string {
	totalMs := durationMs(d)
	switch {
	case totalMs < 1.0:
		return fmt.Sprintf("%.2f µs", totalMs*1000.0)
	case totalMs < 1000.0:
		return fmt.Sprintf("%.2f ms", totalMs)
	default:
		return fmt.Sprintf("%.2f s", totalMs/1000.0)
	}
}

// PrintSummary writes the timing block printed after a verbose
// exchange.
func (t *Timer) PrintSummary(w io.Writer, enableColor bool) {
	if t == nil || !t.finished {
		return
	}
	au := aurora.NewAurora(enableColor)
	s := t.Summary()

	fmt.Fprintf(w, "\n%s\n", au.Bold(au.Cyan("Timing Summary")))
	for i := 0; i < 50; i++ {
		fmt.Fprint(w, "─")
	}
	fmt.Fprintln(w)

	if s.HasFirstByte {
		fmt.Fprintf(w, "  Time to First Byte: %s\n", au.Yellow(fmt.Sprintf("%8.2f ms", durationMs(s.FirstByte))))
		fmt.Fprintf(w, "  Download Time:      %s\n", au.Yellow(fmt.Sprintf("%8.2f ms", durationMs(s.Download))))
	}
	fmt.Fprintf(w, "  Total Time:         %s\n", au.Bold(au.Green(fmt.Sprintf("%8.2f ms", durationMs(s.Total)))))

	fmt.Fprintf(w, "\n  %s\n", au.Yellow(s.Rating()))
}
