// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags pass both their short and long names.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without EnvPrefix) to the flag
// name(s) it shadows and the function that applies its value. Values that
// fail to parse are ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"CAPACITY", []string{"capacity"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Capacity = parsed
		}
	}},
	{"SLAB_SIZE", []string{"slab-size"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.SlabSize = parsed
		}
	}},
	{"BENCH_ROUNDS", []string{"bench-rounds"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.BenchRounds = parsed
		}
	}},
	{"BENCH_SIZES", []string{"bench-sizes"}, func(c *AppConfig, v string) {
		if sizes, err := parseSizes(v); err == nil {
			c.BenchSizes = sizes
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) {
		c.MemoryLimit = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"SESSION", []string{"session"}, func(c *AppConfig, v string) {
		c.SessionFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) {
		c.LogFormat = v
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) {
		c.Theme = v
	}},
	{"BENCH_GC", []string{"bench-gc"}, func(c *AppConfig, v string) {
		c.BenchGC = v
	}},

	// Boolean overrides
	{"TRIM", []string{"trim"}, func(c *AppConfig, v string) {
		c.Trim = parseBoolEnv(v, c.Trim)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with BIGUINT_):
//   - CAPACITY, SLAB_SIZE, MEMORY_LIMIT, TIMEOUT, BENCH_ROUNDS, BENCH_SIZES,
//     OUTPUT, SESSION, METRICS_ADDR, LOG_FORMAT, THEME, BENCH_GC, TRIM, QUIET,
//     VERBOSE, NO_COLOR
//
// BIGUINT_CONFIG is read separately, before the file layer is applied.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
