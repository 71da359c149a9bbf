// This file loads the optional TOML configuration file.

package config

import (
	"flag"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// FileConfig mirrors the TOML configuration file. Every field is optional;
// nil means "not set in the file".
//
//	[engine]
//	capacity = 64
//	slab_size = 4096
//	memory_limit = "64MiB"
//
//	[output]
//	trim = true
//	theme = "light"
//
//	[bench]
//	sizes = [64, 512]
//	rounds = 10
//	gc = "disabled"
type FileConfig struct {
	Engine *struct {
		Capacity    *int    `toml:"capacity"`
		SlabSize    *int    `toml:"slab_size"`
		MemoryLimit *string `toml:"memory_limit"`
	} `toml:"engine"`
	Output *struct {
		Trim    *bool   `toml:"trim"`
		Quiet   *bool   `toml:"quiet"`
		Verbose *bool   `toml:"verbose"`
		NoColor *bool   `toml:"no_color"`
		Theme   *string `toml:"theme"`
		File    *string `toml:"file"`
	} `toml:"output"`
	Bench *struct {
		Sizes  []int   `toml:"sizes"`
		Rounds *int    `toml:"rounds"`
		GC     *string `toml:"gc"`
	} `toml:"bench"`
	Session     *string `toml:"session"`
	MetricsAddr *string `toml:"metrics_addr"`
	LogFormat   *string `toml:"log_format"`
	Timeout     *string `toml:"timeout"`
}

// LoadFile decodes the TOML file at path. Unknown keys are rejected so that
// typos do not go unnoticed.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("reading config file %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, apperrors.NewConfigError("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if fc.Timeout != nil {
		if _, err := time.ParseDuration(*fc.Timeout); err != nil {
			return FileConfig{}, apperrors.NewConfigError("config file %s: invalid timeout %q", path, *fc.Timeout)
		}
	}
	return fc, nil
}

// apply copies the file's values into config for every flag that was not
// set on the command line.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	set := func(flags ...string) bool { return !isFlagSetAny(fs, flags...) }

	if e := fc.Engine; e != nil {
		setIf(&config.Capacity, e.Capacity, set("capacity"))
		setIf(&config.SlabSize, e.SlabSize, set("slab-size"))
		setIf(&config.MemoryLimit, e.MemoryLimit, set("memory-limit"))
	}
	if o := fc.Output; o != nil {
		setIf(&config.Trim, o.Trim, set("trim"))
		setIf(&config.Quiet, o.Quiet, set("quiet", "q"))
		setIf(&config.Verbose, o.Verbose, set("verbose", "v"))
		setIf(&config.NoColor, o.NoColor, set("no-color"))
		setIf(&config.Theme, o.Theme, set("theme"))
		setIf(&config.OutputFile, o.File, set("output", "o"))
	}
	if b := fc.Bench; b != nil {
		setIf(&config.BenchRounds, b.Rounds, set("bench-rounds"))
		setIf(&config.BenchGC, b.GC, set("bench-gc"))
	}
	setIf(&config.SessionFile, fc.Session, set("session"))
	setIf(&config.MetricsAddr, fc.MetricsAddr, set("metrics-addr"))
	setIf(&config.LogFormat, fc.LogFormat, set("log-format"))
	if fc.Timeout != nil && set("timeout") {
		config.Timeout, _ = time.ParseDuration(*fc.Timeout)
	}
}

func setIf[T any](dst *T, v *T, ok bool) {
	if v != nil && ok {
		*dst = *v
	}
}
