package profiler

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// WriteReport writes one line per timer, then a TOTAL line unless total is
// negative:
//
//	Timer@0012-0020: 0H-0M-1S-250000us (calls: 3)
//	TOTAL: 0H-0M-2S-4017us
func (p *Profiler) WriteReport(w io.Writer, total time.Duration) error {
	bw := bufio.NewWriter(w)
	for _, e := range p.Report() {
		fmt.Fprintf(bw, "Timer@%04d-%04d: %s (calls: %d)\n", e.Line, e.StopLine, FormatDuration(e.Elapsed), e.Calls)
	}
	if total >= 0 {
		fmt.Fprintf(bw, "TOTAL: %s\n", FormatDuration(total))
	}
	return bw.Flush()
}

// FormatDuration renders d as hours, minutes, seconds and microseconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%dH-%dM-%dS-%dus", h, m, s, d/time.Microsecond)
}
