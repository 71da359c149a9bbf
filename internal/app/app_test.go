package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// run builds the application from args and runs it. Tests in this file
// are sequential: Run sets the process-wide theme and log level.
func run(t *testing.T, input string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errW bytes.Buffer
	a, err := New(append([]string{"biguint", "--no-color"}, args...), &errW, WithInput(strings.NewReader(input)))
	require.NoError(t, err)
	code = a.Run(context.Background(), &out)
	return code, out.String(), errW.String()
}

func TestRunEval(t *testing.T) {
	code, out, _ := run(t, "", "-q", "-e", "add s 0xfeff 0xeafe; mul p 0x05 0x06; trim p")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "0x01e9fd\n0x001e\n0x1e\n", out)
}

func TestRunEvalDisplay(t *testing.T) {
	code, out, _ := run(t, "", "-e", "let a 0x0100; cmp a 0xff")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out, "0x0100")
	assert.Contains(t, out, "cmp: 1")
}

func TestRunScriptFromInput(t *testing.T) {
	script := "let a 0x05\n# comment line\nmul p a a # square\n"
	code, out, _ := run(t, script, "-q")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "0x05\n0x0019\n", out)
}

func TestRunEmptyScript(t *testing.T) {
	code, _, stderr := run(t, "\n# nothing\n", "-q")
	assert.Equal(t, apperrors.ExitErrorConfig, code)
	assert.Contains(t, stderr, "no commands")
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"underflow", []string{"-e", "sub d 0x01 0x02"}, apperrors.ExitErrorArithmetic},
		{"shift overflow", []string{"-e", "shr x 0x01 0x010000000000000000"}, apperrors.ExitErrorArithmetic},
		{"memory limit", []string{"--capacity", "1", "--memory-limit", "8", "-e", "shl x 0x01 1000"}, apperrors.ExitErrorMemory},
		{"unknown command", []string{"-e", "pow x 0x02 0x03"}, apperrors.ExitErrorConfig},
		{"timeout", []string{"--timeout", "1ns", "-e", "add x 0x01 0x01"}, apperrors.ExitErrorCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, "", append([]string{"-q"}, tt.args...)...)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	code, out, stderr := run(t, "", "-q", "-e", "let a 0x01; sub b 0x00 a; let c 0x02")
	assert.Equal(t, apperrors.ExitErrorArithmetic, code)
	assert.Equal(t, "0x01\n", out)
	assert.Contains(t, stderr, "command 2")
}

func TestRunSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.msgpack")

	code, _, _ := run(t, "", "-q", "--session", path, "-e", "let a 0x2a; let b 0x0100")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.FileExists(t, path)

	code, out, _ := run(t, "", "-q", "--session", path, "-e", "add c a b")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "0x00012a\n", out)
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	code, _, _ := run(t, "", "-q", "-o", path, "-e", "let a 0x07")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.FileExists(t, path)
}

func TestRunREPL(t *testing.T) {
	code, out, _ := run(t, "add x 0x01 0x02\nvars\nexit\n", "--repl")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out, "biguint - Unsigned Integer Calculator")
	assert.Contains(t, out, "x = 0x3")
	assert.Contains(t, out, "Goodbye!")
}

func TestRunBench(t *testing.T) {
	code, out, _ := run(t, "", "-q", "--bench", "--bench-sizes", "8,16", "--bench-rounds", "2", "--bench-gc", "disabled")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out, "per op")
	assert.Contains(t, out, "sqrt")
	assert.Contains(t, out, "gc enabled")
}

func TestRunCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		code, out, _ := run(t, "", "--completion", shell)
		assert.Equal(t, apperrors.ExitSuccess, code, shell)
		assert.Contains(t, out, "biguint", shell)
	}
}

func TestNewErrors(t *testing.T) {
	var errW bytes.Buffer
	_, err := New([]string{"biguint", "--help"}, &errW)
	assert.True(t, IsHelpError(err))
	assert.Contains(t, errW.String(), "Usage:")

	_, err = New([]string{"biguint", "--capacity", "-1"}, &errW)
	require.Error(t, err)
	assert.False(t, IsHelpError(err))
	assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
}

func TestHasVersionFlag(t *testing.T) {
	assert.True(t, HasVersionFlag([]string{"--version"}))
	assert.True(t, HasVersionFlag([]string{"-q", "-V"}))
	assert.False(t, HasVersionFlag([]string{"-e", "let a 0x01"}))
	assert.False(t, HasVersionFlag([]string{"--", "--version"}))
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "biguint "))
	assert.Contains(t, buf.String(), "go:")
}
