// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatHex], [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/biguint/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet prints bare values only.
	Quiet bool
	// Verbose adds the little-endian byte list and the timing to each result.
	Verbose bool
}

// FormatQuietResult formats a result as a single line suitable for scripting:
// the hexadecimal value, or the text answer for commands without a value.
func FormatQuietResult(r Result) string {
	if r.HasValue() {
		return FormatHex(r.Bytes)
	}
	return r.Text
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, r Result) {
	if line := FormatQuietResult(r); line != "" {
		fmt.Fprintln(out, line)
	}
}

// formatResultBody returns the key/value lines shown inside a result box.
func formatResultBody(r Result, verbose bool) string {
	bitLen := 0
	for i := len(r.Bytes) - 1; i >= 0; i-- {
		if r.Bytes[i] != 0 {
			bitLen = i*8 + bits.Len8(r.Bytes[i])
			break
		}
	}
	lines := []string{
		fmt.Sprintf("value  %s", FormatHex(r.Bytes)),
		fmt.Sprintf("size   %d bytes, %d significant bits", len(r.Bytes), bitLen),
	}
	if verbose {
		lines = append(lines,
			fmt.Sprintf("bytes  %s", FormatBytes(r.Bytes)),
			fmt.Sprintf("time   %s", FormatExecutionDuration(r.Duration)))
	}
	return strings.Join(lines, "\n")
}

// DisplayResult renders a result. Values are framed in a themed box titled
// with the variable name; text answers are printed on one line.
//
// Parameters:
//   - out: The output writer.
//   - r: The evaluated command result.
//   - verbose: Adds the byte list and evaluation time.
func DisplayResult(out io.Writer, r Result, verbose bool) {
	if !r.HasValue() {
		label := r.Command
		if r.Name != "" {
			label += " " + r.Name
		}
		fmt.Fprintf(out, "%s%s%s: %s\n", ui.ColorCyan(), label, ui.ColorReset(), r.Text)
		return
	}
	title := ui.TitleStyle().Render(fmt.Sprintf("%s (%s)", r.Name, r.Command))
	fmt.Fprintln(out, ui.BoxStyle().Render(title+"\n"+formatResultBody(r, verbose)))
}

// DisplayError prints an evaluation error in the theme's error color.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// DisplayResultWithConfig displays a result with the given output
// configuration. File output is handled separately by WriteResultToFile,
// which receives every result of a run at once.
func DisplayResultWithConfig(out io.Writer, r Result, config OutputConfig) {
	if config.Quiet {
		DisplayQuietResult(out, r)
		return
	}
	DisplayResult(out, r, config.Verbose)
}

// WriteResultToFile writes the results of a run to config.OutputFile, one
// "name = value" line per result. It does nothing when no file is
// configured.
//
// Parameters:
//   - results: The results to record, in evaluation order.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(results []Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# biguint results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "\n")
	for _, r := range results {
		name := r.Name
		if name == "" {
			name = r.Command
		}
		if r.HasValue() {
			fmt.Fprintf(file, "%s = %s %s\n", name, FormatHex(r.Bytes), FormatBytes(r.Bytes))
		} else {
			fmt.Fprintf(file, "%s: %s\n", name, r.Text)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
