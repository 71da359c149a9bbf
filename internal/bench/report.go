package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// WriteReport renders the report as an aligned table followed by a
// memory and GC summary.
//
// Parameters:
//   - w: The destination writer.
//   - r: The report to render.
//
// Returns:
//   - error: The first write error, if any.
func WriteReport(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "op\tbytes\trounds\ttotal\tper op\tpeak bytes\t")
	for _, res := range r.Results {
		if res.Rounds == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%d\t\n",
			res.Op, res.Size, res.Rounds,
			formatDuration(res.Total), formatDuration(res.PerOp()), res.PeakBytes)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	gc := "enabled"
	if r.GC.Suspended {
		gc = "suspended"
	}
	_, err := fmt.Fprintf(w, "\nelapsed %s, allocated %d bytes in %d allocations, gc %s (%d cycles, %s paused)\n",
		formatDuration(r.Elapsed), r.Memory.AllocatedBytes, r.Memory.Allocations,
		gc, r.GC.NumGC, formatDuration(time.Duration(r.GC.PauseTotalNs)))
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if r.Host.CPUs > 0 {
		_, err = fmt.Fprintf(w, "host %d CPUs, cpu %.1f%%, memory %.1f%% of %d MiB\n",
			r.Host.CPUs, r.Host.CPUPercent, r.Host.MemPercent, r.Host.MemTotal>>20)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// formatDuration rounds d to a precision that suits its magnitude.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return d.String()
	case d < time.Millisecond:
		return d.Round(10 * time.Nanosecond).String()
	case d < time.Second:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
