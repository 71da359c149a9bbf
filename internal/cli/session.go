package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/biguint/internal/biguint"
	apperrors "github.com/agbru/biguint/internal/errors"
)

// sessionSchemaVersion is bumped whenever the session layout changes.
const sessionSchemaVersion uint16 = 1

// Session is the on-disk form of an evaluator environment, encoded with
// MessagePack. Values are stored as untrimmed little-endian bytes.
type Session struct {
	Schema uint16            `msgpack:"schema"`
	Vars   map[string][]byte `msgpack:"vars"`
}

// SaveSession writes every variable to path. The file is replaced
// atomically: a temporary file in the same directory is renamed over it.
func (e *Evaluator) SaveSession(path string) error {
	s := Session{Schema: sessionSchemaVersion, Vars: make(map[string][]byte, len(e.vars))}
	for name, v := range e.vars {
		s.Vars[name] = v.Bytes()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&s); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return os.Rename(f.Name(), path)
}

// LoadSession reads a session written by SaveSession and binds its
// variables, replacing the values of names that already exist. The returned
// error wraps os.ErrNotExist when path does not exist.
func (e *Evaluator) LoadSession(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var s Session
	if err := msgpack.NewDecoder(f).Decode(&s); err != nil {
		return 0, apperrors.WrapError(err, "failed to decode session %s", path)
	}
	if s.Schema != sessionSchemaVersion {
		return 0, apperrors.ValidationError{
			Field:   "session",
			Message: fmt.Sprintf("unsupported schema %d (want %d)", s.Schema, sessionSchemaVersion),
		}
	}
	for name, b := range s.Vars {
		if !validName(name) {
			return 0, apperrors.ValidationError{Field: name, Message: "invalid variable name in session"}
		}
		if _, err := e.assign(name, func(z *biguint.Uint) error { return z.SetBytes(b) }); err != nil {
			return 0, err
		}
	}
	return len(s.Vars), nil
}

func (e *Evaluator) save(args []string) (Result, error) {
	if err := e.SaveSession(args[0]); err != nil {
		return Result{}, err
	}
	return Result{Text: fmt.Sprintf("saved %d variables to %s", len(e.vars), args[0])}, nil
}

func (e *Evaluator) load(args []string) (Result, error) {
	n, err := e.LoadSession(args[0])
	if err != nil {
		return Result{}, err
	}
	return Result{Text: fmt.Sprintf("loaded %d variables from %s", n, args[0])}, nil
}
