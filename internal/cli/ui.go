package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/biguint/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the suffix under the spinner's lock, since the
// animation goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgress formats the spinner suffix for done of total steps.
func FormatProgress(label string, done, total int) string {
	p := 0.0
	if total > 0 {
		p = float64(done) / float64(total)
	}
	return fmt.Sprintf(" %s %s%s%s %d/%d", label, ui.ColorGreen(), progressBar(p, ProgressBarWidth), ui.ColorReset(), done, total)
}

// Progress reports the advancement of a long run through a spinner.
// Update may be called from several goroutines.
type Progress struct {
	mu      sync.Mutex
	label   string
	spinner Spinner
	stopped bool
}

// DisplayProgress starts a spinner on out and returns the Progress that
// drives it. The caller must call Stop.
//
// Parameters:
//   - out: The writer the spinner draws on.
//   - label: Text shown before the progress bar.
//   - total: The number of steps expected.
func DisplayProgress(out io.Writer, label string, total int) *Progress {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(FormatProgress(label, 0, total))
	s.Start()
	return &Progress{label: label, spinner: s}
}

// Update records done of total steps.
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stopped {
		p.spinner.UpdateSuffix(FormatProgress(p.label, done, total))
	}
}

// Stop halts the spinner. It is safe to call more than once.
func (p *Progress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stopped {
		p.stopped = true
		p.spinner.Stop()
	}
}
