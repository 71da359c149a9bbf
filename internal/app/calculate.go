package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/biguint/internal/bench"
	"github.com/agbru/biguint/internal/cli"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/ui"
)

// outputConfig builds the CLI output options from the configuration.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
}

// runCalculate evaluates commands from --eval, the REPL or a script read
// from standard input, with the session loaded before and saved after.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	eval := cli.NewEvaluator(cli.EvaluatorConfig{
		EngineOptions: a.engineOptions(),
		Trim:          a.Config.Trim,
		Logger:        a.logger,
	})
	defer func() {
		if err := eval.Close(); err != nil {
			a.logger.Error("failed to release variables", err)
		}
	}()

	if err := a.loadSession(eval); err != nil {
		return a.fail(err)
	}

	var runErr error
	if a.Config.REPL {
		repl := cli.NewREPL(eval, cli.REPLConfig{Timeout: a.Config.Timeout, Output: a.outputConfig()})
		repl.SetInput(a.In)
		repl.SetOutput(out)
		repl.Start(ctx)
	} else {
		runErr = a.runScript(ctx, eval, out)
	}

	if err := a.saveSession(eval); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return a.fail(runErr)
	}
	return apperrors.ExitSuccess
}

// runScript evaluates --eval, or standard input when no expression was
// given, under the global timeout.
func (a *Application) runScript(ctx context.Context, eval *cli.Evaluator, out io.Writer) error {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	script := a.Config.Eval
	if script == "" {
		data, err := io.ReadAll(a.In)
		if err != nil {
			return apperrors.WrapError(err, "failed to read commands")
		}
		script = string(data)
	}
	cmds := cli.SplitCommands(script)
	if len(cmds) == 0 {
		return apperrors.ValidationError{Field: "commands", Message: "no commands to evaluate"}
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}
	_, err := cli.RunCommands(ctx, eval, cmds, out, a.outputConfig())
	return err
}

// runBench benchmarks the engine operations and prints the report.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	cfg := bench.Config{
		Sizes:         a.Config.BenchSizes,
		Rounds:        a.Config.BenchRounds,
		EngineOptions: a.engineOptions(),
		GCMode:        bench.GCMode(a.Config.BenchGC),
		Logger:        a.logger,
	}
	var progress *cli.Progress
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintf(out, "Benchmarking %s%d%s cases of %s%d%s rounds.\n",
			ui.ColorCyan(), len(cfg.Cases()), ui.ColorReset(),
			ui.ColorCyan(), cfg.Rounds, ui.ColorReset())
		progress = cli.DisplayProgress(out, "bench", len(cfg.Cases()))
		cfg.OnProgress = progress.Update
	}

	report, err := bench.Run(ctx, cfg)
	if progress != nil {
		progress.Stop()
		fmt.Fprintln(out)
	}
	if err != nil {
		return a.fail(err)
	}
	if err := bench.WriteReport(out, report); err != nil {
		return a.fail(err)
	}
	return apperrors.ExitSuccess
}
