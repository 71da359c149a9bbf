package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/biguint/internal/config"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/ui"
)

// PrintExecutionConfig displays the engine configuration of the run.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	limit := "unlimited"
	if cfg.MemoryLimit != "" && cfg.MemoryLimitBytes() > 0 {
		limit = fmt.Sprintf("%s (%d bytes)", cfg.MemoryLimit, cfg.MemoryLimitBytes())
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Engine: capacity=%s%d%s bytes, slab=%s%d%s bytes, memory limit=%s%s%s.\n",
		ui.ColorCyan(), cfg.Capacity, ui.ColorReset(),
		ui.ColorCyan(), cfg.SlabSize, ui.ColorReset(),
		ui.ColorYellow(), limit, ui.ColorReset())
	fmt.Fprintf(out, "Timeout: %s%s%s. Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset(),
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// SplitCommands splits a script into commands. Commands are separated by
// newlines or ';'. Blank commands and '#' comments are dropped.
func SplitCommands(script string) []string {
	var cmds []string
	for _, line := range strings.Split(script, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, cmd := range strings.Split(line, ";") {
			if cmd = strings.TrimSpace(cmd); cmd != "" {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// RunCommands evaluates cmds in order, displaying each result, and stops at
// the first failure. When an output file is configured, the results
// evaluated so far are written to it, even on failure.
//
// Parameters:
//   - ctx: Cancelling ctx stops the run before the next command.
//   - eval: The evaluator holding the variables.
//   - cmds: The commands, as returned by SplitCommands.
//   - out: The writer for results.
//   - config: Output configuration.
//
// Returns:
//   - []Result: The results of the commands that succeeded.
//   - error: The first failure, naming the command that caused it.
func RunCommands(ctx context.Context, eval *Evaluator, cmds []string, out io.Writer, config OutputConfig) ([]Result, error) {
	results := make([]Result, 0, len(cmds))
	var runErr error
	for i, cmd := range cmds {
		res, err := eval.Exec(ctx, cmd)
		if err != nil {
			runErr = apperrors.WrapError(err, "command %d (%s)", i+1, cmd)
			break
		}
		results = append(results, res)
		DisplayResultWithConfig(out, res, config)
	}
	if err := WriteResultToFile(results, config); err != nil {
		if runErr == nil {
			runErr = err
		}
	} else if config.OutputFile != "" && !config.Quiet && len(results) > 0 {
		fmt.Fprintf(out, "%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return results, runErr
}
