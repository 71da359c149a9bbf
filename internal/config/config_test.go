package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/biguint/internal/biguint"
	apperrors "github.com/agbru/biguint/internal/errors"
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("biguint", args, io.Discard)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biguint.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, biguint.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, biguint.DefaultSlabSize, cfg.SlabSize)
	assert.Equal(t, "", cfg.MemoryLimit)
	assert.Equal(t, 0, cfg.MemoryLimitBytes())
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultBenchSizes, cfg.BenchSizes)
	assert.Equal(t, DefaultBenchRounds, cfg.BenchRounds)
	assert.Equal(t, "auto", cfg.BenchGC)
	assert.False(t, cfg.REPL)
	assert.Len(t, cfg.EngineOptions(), 3)
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t,
		"--capacity", "8", "--slab-size", "0", "--memory-limit", "1KiB",
		"-e", "show 0x01", "-q", "--trim", "--log-format", "json",
		"--bench-sizes", "32, 64", "--timeout", "2s",
	)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Capacity)
	assert.Equal(t, 0, cfg.SlabSize)
	assert.Equal(t, 1024, cfg.MemoryLimitBytes())
	assert.Equal(t, "show 0x01", cfg.Eval)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.Trim)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, []int{32, 64}, cfg.BenchSizes)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestParseConfig_Help(t *testing.T) {
	_, err := parse(t, "--help")
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"positional argument", []string{"extra"}},
		{"zero capacity", []string{"--capacity", "0"}},
		{"negative slab", []string{"--slab-size", "-1"}},
		{"bad memory limit", []string{"--memory-limit", "lots"}},
		{"capacity above limit", []string{"--capacity", "128", "--memory-limit", "64"}},
		{"bad log format", []string{"--log-format", "xml"}},
		{"bad theme", []string{"--theme", "neon"}},
		{"two modes", []string{"--repl", "--bench"}},
		{"bad bench sizes", []string{"--bench-sizes", "1,x"}},
		{"unknown shell", []string{"--completion", "tcsh"}},
		{"zero rounds", []string{"--bench-rounds", "0"}},
		{"bad gc mode", []string{"--bench-gc", "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err), "error: %v", err)
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"CAPACITY", "16")
	t.Setenv(EnvPrefix+"MEMORY_LIMIT", "2MiB")
	t.Setenv(EnvPrefix+"VERBOSE", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"SLAB_SIZE", "not-a-number")

	cfg, err := parse(t, "--capacity", "4")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Capacity, "flags win over the environment")
	assert.Equal(t, 2<<20, cfg.MemoryLimitBytes())
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, biguint.DefaultSlabSize, cfg.SlabSize, "unparsable values are ignored")
}

func TestParseConfig_File(t *testing.T) {
	path := writeFile(t, `
log_format = "json"
timeout = "10s"

[engine]
capacity = 12
slab_size = 0
memory_limit = "8KiB"

[output]
trim = true
theme = "light"

[bench]
sizes = [8, 24]
rounds = 3
gc = "disabled"
`)

	t.Run("file values apply", func(t *testing.T) {
		cfg, err := parse(t, "--config", path)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Capacity)
		assert.Equal(t, 0, cfg.SlabSize)
		assert.Equal(t, 8<<10, cfg.MemoryLimitBytes())
		assert.True(t, cfg.Trim)
		assert.Equal(t, "light", cfg.Theme)
		assert.Equal(t, LogFormatJSON, cfg.LogFormat)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.Equal(t, []int{8, 24}, cfg.BenchSizes)
		assert.Equal(t, 3, cfg.BenchRounds)
		assert.Equal(t, "disabled", cfg.BenchGC)
	})

	t.Run("env and flags win over the file", func(t *testing.T) {
		t.Setenv(EnvPrefix+"THEME", "none")
		cfg, err := parse(t, "--config", path, "--capacity", "5")
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Capacity)
		assert.Equal(t, "none", cfg.Theme)
	})

	t.Run("config path from environment", func(t *testing.T) {
		t.Setenv(EnvPrefix+"CONFIG", path)
		cfg, err := parse(t)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Capacity)
	})
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		var cfgErr apperrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "[engine]\ncapacty = 3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "engine.capacty")
	})

	t.Run("bad timeout", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, `timeout = "soon"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func TestParseMemoryLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"4096", 4096, false},
		{"512B", 512, false},
		{"1K", 1024, false},
		{"2KiB", 2048, false},
		{"3kb", 3000, false},
		{"64MiB", 64 << 20, false},
		{"1MB", 1_000_000, false},
		{"1G", 1 << 30, false},
		{" 2 GiB ", 2 << 30, false},
		{"-1", 0, true},
		{"MiB", 0, true},
		{"12XB", 0, true},
		{"9999999999999GiB", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMemoryLimit(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseMemoryLimit(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseMemoryLimit(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseMemoryLimit(%q)", tt.in)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	assert.True(t, parseBoolEnv("TRUE", false))
	assert.True(t, parseBoolEnv("1", false))
	assert.False(t, parseBoolEnv("no", true))
	assert.True(t, parseBoolEnv("maybe", true))
}
