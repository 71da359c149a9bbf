package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	apperrors "github.com/agbru/biguint/internal/errors"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "state.mp")

	src := newEvaluator(t)
	run(t, src, "mul p 0x05 0x06", "let a 0x1e9fd")
	res := run(t, src, "save "+path)
	assert.Contains(t, res.Text, "saved 2 variables")

	dst := newEvaluator(t)
	run(t, dst, "let a 0x07")
	res = run(t, dst, "load "+path)
	assert.Contains(t, res.Text, "loaded 2 variables")

	assert.Equal(t, []string{"a", "p"}, dst.Names())
	assert.Equal(t, []byte{30, 0}, run(t, dst, "show p").Bytes, "untrimmed storage is preserved")
	assert.Equal(t, "true", run(t, dst, "eq a 0x1e9fd").Text)
}

func TestLoadSessionMissingFile(t *testing.T) {
	t.Parallel()
	_, err := newEvaluator(t).LoadSession(filepath.Join(t.TempDir(), "absent.mp"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadSessionRejectsBadFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	write := func(name string, v any) string {
		b, err := msgpack.Marshal(v)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, b, 0o600))
		return path
	}

	t.Run("schema", func(t *testing.T) {
		path := write("schema.mp", Session{Schema: 99})
		_, err := newEvaluator(t).LoadSession(path)
		var valErr apperrors.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "session", valErr.Field)
	})

	t.Run("variable name", func(t *testing.T) {
		path := write("name.mp", Session{Schema: sessionSchemaVersion, Vars: map[string][]byte{"0xbad": {1}}})
		_, err := newEvaluator(t).LoadSession(path)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.mp")
		require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o600))
		_, err := newEvaluator(t).Exec(context.Background(), "load "+path)
		assert.ErrorContains(t, err, "failed to decode session")
	})
}
