package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/agbru/biguint/internal/biguint"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/ui"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "BIGUINT_"

// Log formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// CompletionShells lists the shells accepted by --completion.
var CompletionShells = []string{"bash", "zsh", "fish"}

// BenchGCModes lists the values accepted by --bench-gc.
var BenchGCModes = []string{"auto", "aggressive", "disabled"}

// DefaultTimeout bounds a whole run (one-shot evaluation, script or bench).
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates the settings of a run.
type AppConfig struct {
	// Engine
	Capacity    int
	SlabSize    int
	MemoryLimit string // human-readable, see ParseMemoryLimit

	// Modes
	Eval  string
	REPL  bool
	Bench bool
	// Completion names a shell whose completion script is printed.
	Completion string

	// Bench parameters
	BenchSizes  []int
	BenchRounds int
	BenchGC     string

	// Output
	Trim        bool
	Quiet       bool
	Verbose     bool
	NoColor     bool
	Theme       string
	OutputFile  string
	SessionFile string

	// Ambient
	ConfigFile  string
	MetricsAddr string
	LogFormat   string
	Timeout     time.Duration
}

// MemoryLimitBytes returns MemoryLimit in bytes; zero means unlimited.
// The value has already been validated by ParseConfig.
func (c AppConfig) MemoryLimitBytes() int {
	n, _ := ParseMemoryLimit(c.MemoryLimit)
	return n
}

// EngineOptions returns the biguint options matching the configuration.
func (c AppConfig) EngineOptions() []biguint.Option {
	return []biguint.Option{
		biguint.WithCapacity(c.Capacity),
		biguint.WithSlabSize(c.SlabSize),
		biguint.WithMemoryLimit(c.MemoryLimitBytes()),
	}
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Values are resolved with the priority: CLI flags > BIGUINT_* environment
// variables > TOML file given by --config (or BIGUINT_CONFIG) > defaults.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments without the program name.
//   - errorWriter: Destination of usage and flag errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h/--help was given, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintln(errorWriter, "Arbitrary-precision unsigned integer calculator on little-endian byte buffers.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables use the %s prefix, e.g. %sMEMORY_LIMIT=64MiB.\n", EnvPrefix, EnvPrefix)
	}

	config := AppConfig{}
	var benchSizes string
	fs.IntVar(&config.Capacity, "capacity", biguint.DefaultCapacity, "Initial byte length of new values.")
	fs.IntVar(&config.SlabSize, "slab-size", biguint.DefaultSlabSize, "Arena slab size per value in bytes (0 disables the slab).")
	fs.StringVar(&config.MemoryLimit, "memory-limit", "", "Per-value memory limit (e.g. 64MiB, 1G, 4096). Empty means unlimited.")

	fs.StringVar(&config.Eval, "eval", "", "Evaluate the given commands (separated by ';') and exit.")
	fs.StringVar(&config.Eval, "e", "", "Shorthand for --eval.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive prompt.")
	fs.BoolVar(&config.Bench, "bench", false, "Benchmark the engine operations.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish and exit.")
	fs.StringVar(&benchSizes, "bench-sizes", "", "Comma-separated operand sizes in bytes for --bench.")
	fs.IntVar(&config.BenchRounds, "bench-rounds", DefaultBenchRounds, "Iterations per benchmark case.")
	fs.StringVar(&config.BenchGC, "bench-gc", "auto", fmt.Sprintf("Garbage collector control during --bench %v.", BenchGCModes))

	fs.BoolVar(&config.Trim, "trim", false, "Trim results before displaying them.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show byte lists and engine debug logs.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", "dark", fmt.Sprintf("Color theme %v.", ui.ThemeNames()))
	fs.StringVar(&config.OutputFile, "output", "", "Write displayed results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.SessionFile, "session", "", "Load variables from this session file and save them back on exit.")

	fs.StringVar(&config.ConfigFile, "config", "", "TOML configuration file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogFormat, "log-format", LogFormatConsole, "Log format: console or json.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of a run.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if config.ConfigFile == "" {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
		if fc.Bench != nil && len(fc.Bench.Sizes) > 0 && !isFlagSet(fs, "bench-sizes") {
			config.BenchSizes = fc.Bench.Sizes
		}
	}

	if benchSizes != "" {
		sizes, err := parseSizes(benchSizes)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("invalid --bench-sizes: %v", err)
		}
		config.BenchSizes = sizes
	}
	applyEnvOverrides(&config, fs)
	if len(config.BenchSizes) == 0 {
		config.BenchSizes = slices.Clone(DefaultBenchSizes)
	}

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.Capacity < 1 {
		return apperrors.NewConfigError("--capacity must be at least 1, got %d", c.Capacity)
	}
	if c.SlabSize < 0 {
		return apperrors.NewConfigError("--slab-size must not be negative, got %d", c.SlabSize)
	}
	limit, err := ParseMemoryLimit(c.MemoryLimit)
	if err != nil {
		return apperrors.NewConfigError("invalid --memory-limit: %v", err)
	}
	if limit > 0 && c.Capacity > limit {
		return apperrors.NewConfigError("--capacity %d exceeds --memory-limit %s", c.Capacity, c.MemoryLimit)
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.NewConfigError("--log-format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.LogFormat)
	}
	if !slices.Contains(ui.ThemeNames(), c.Theme) {
		return apperrors.NewConfigError("unknown --theme %q (valid: %v)", c.Theme, ui.ThemeNames())
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	modes := 0
	for _, on := range []bool{c.Eval != "", c.REPL, c.Bench} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--eval, --repl and --bench are mutually exclusive")
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported --completion shell %q (valid: %v)", c.Completion, CompletionShells)
	}
	if c.BenchRounds < 1 {
		return apperrors.NewConfigError("--bench-rounds must be at least 1, got %d", c.BenchRounds)
	}
	if !slices.Contains(BenchGCModes, c.BenchGC) {
		return apperrors.NewConfigError("unknown --bench-gc mode %q (valid: %v)", c.BenchGC, BenchGCModes)
	}
	for _, s := range c.BenchSizes {
		if s < 1 {
			return apperrors.NewConfigError("bench sizes must be positive, got %d", s)
		}
	}
	return nil
}
