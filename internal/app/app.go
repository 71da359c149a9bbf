package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/biguint/internal/biguint"
	"github.com/agbru/biguint/internal/cli"
	"github.com/agbru/biguint/internal/config"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/logging"
	"github.com/agbru/biguint/internal/metrics"
	"github.com/agbru/biguint/internal/server"
	"github.com/agbru/biguint/internal/ui"
)

// Application represents the biguint application instance.
type Application struct {
	Config    config.AppConfig
	In        io.Reader
	ErrWriter io.Writer

	logger   logging.Logger
	recorder *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader scripts and the REPL read from, os.Stdin by
// default.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument list, program name first.
//   - errWriter: Destination of usage messages, errors and logs.
//   - opts: Optional settings.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp for --help, otherwise a ConfigError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{In: os.Stdin, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "biguint"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)
	a.logger = a.newLogger()
	a.recorder = metrics.NewRecorder()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.MetricsAddr != "" {
		stopServer := a.startMetricsServer(ctx)
		defer stopServer()
	}

	if a.Config.Bench {
		return a.runBench(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) newLogger() logging.Logger {
	level := zerolog.InfoLevel
	switch {
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	case a.Config.Quiet:
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if a.Config.LogFormat == "json" {
		return logging.NewLogger(a.ErrWriter, "biguint")
	}
	return logging.NewConsoleLogger(a.ErrWriter, "biguint")
}

// startMetricsServer serves the recorder in the background and returns a
// function that stops the server and waits for it.
func (a *Application) startMetricsServer(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	srv := server.NewServer(a.Config.MetricsAddr, a.recorder, a.logger)
	go func() {
		defer close(done)
		if err := srv.Start(ctx); err != nil {
			a.logger.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// engineOptions returns the configured engine options wired to the
// application's metrics and logger.
func (a *Application) engineOptions() []biguint.Option {
	return append(a.Config.EngineOptions(),
		biguint.WithObserver(a.recorder),
		biguint.WithLogger(a.logger))
}

// loadSession restores the --session file into eval. A missing file is
// not an error: it is created on exit.
func (a *Application) loadSession(eval *cli.Evaluator) error {
	if a.Config.SessionFile == "" {
		return nil
	}
	n, err := eval.LoadSession(a.Config.SessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	a.logger.Debug("session loaded",
		logging.String("path", a.Config.SessionFile),
		logging.Int("vars", n))
	return nil
}

func (a *Application) saveSession(eval *cli.Evaluator) error {
	if a.Config.SessionFile == "" {
		return nil
	}
	return eval.SaveSession(a.Config.SessionFile)
}

// fail reports err and returns the matching exit code.
func (a *Application) fail(err error) int {
	cli.DisplayError(a.ErrWriter, err)
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
