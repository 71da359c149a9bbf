// Package cli provides the command evaluator, the REPL (Read-Eval-Print
// Loop) and the terminal rendering of biguint values.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/biguint/internal/ui"
)

// Prompt is printed before each REPL input line.
const Prompt = "biguint> "

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each command.
	Timeout time.Duration
	// Output controls how results are rendered.
	Output OutputConfig
}

// REPL represents an interactive calculator session over an Evaluator.
type REPL struct {
	config REPLConfig
	eval   *Evaluator
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - eval: The evaluator holding the session variables.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance reading stdin and writing stdout.
func NewREPL(eval *Evaluator, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		eval:   eval,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits, EOF is reached or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintf(r.out, "\n%sInterrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+Prompt+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := err != nil

		input = strings.TrimSpace(input)
		if input != "" && !strings.HasPrefix(input, "#") {
			if !r.processCommand(ctx, input) {
				return // Exit command received
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sbiguint - Unsigned Integer Calculator%s                %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range CommandNames() {
		usage, help, _ := CommandUsage(name)
		fmt.Fprintf(r.out, "  %s%-24s%s - %s\n", ui.ColorYellow(), usage, ui.ColorReset(), help)
	}
	fmt.Fprintf(r.out, "  %s%-24s%s - %s\n", ui.ColorYellow(), "verbose", ui.ColorReset(), "Toggle byte lists and timings")
	fmt.Fprintf(r.out, "  %s%-24s%s - %s\n", ui.ColorYellow(), "help", ui.ColorReset(), "Display this help")
	fmt.Fprintf(r.out, "  %s%-24s%s - %s\n", ui.ColorYellow(), "exit / quit", ui.ColorReset(), "Exit interactive mode")
	fmt.Fprintf(r.out, "Operands are variable names or hex literals (most significant digit first), e.g. %s0x1e9fd%s.\n",
		ui.ColorMagenta(), ui.ColorReset())
}

// processCommand handles REPL built-ins and forwards everything else to
// the evaluator. Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case "help", "h", "?":
		r.printHelp()
	case "verbose":
		r.config.Output.Verbose = !r.config.Output.Verbose
		status := "disabled"
		if r.config.Output.Verbose {
			status = "enabled"
		}
		fmt.Fprintf(r.out, "Verbose display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) evaluate(ctx context.Context, input string) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	res, err := r.eval.Exec(ctx, input)
	if err != nil {
		DisplayError(r.out, err)
		if _, _, known := CommandUsage(strings.ToLower(strings.Fields(input)[0])); !known {
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
		return
	}
	DisplayResultWithConfig(r.out, res, r.config.Output)
}
