package biguint

import (
	"math/big"
	"slices"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// Uint is an arbitrary-precision unsigned integer stored as little-endian
// bytes. Its storage always holds at least one byte. The zero value of Uint
// is not usable; create values with New, FromUint64 or Scope.New.
type Uint struct {
	buf   []byte
	off   int // slab offset of buf's block, -1 when heap-backed
	scope *Scope
}

// New creates a value under a fresh scope.
//
// Parameters:
//   - opts: Value options (WithCapacity, WithBytes) and scope options
//     (WithSlabSize, WithMemoryLimit, WithObserver, WithLogger).
//
// Returns:
//   - *Uint: The new value, zero unless WithBytes was given.
//   - error: A ValidationError for a capacity below one byte, or a
//     MemoryError when the initial block exceeds the memory limit.
func New(opts ...Option) (*Uint, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := newScope(cfg)
	z, err := s.newValue(cfg)
	if err != nil {
		_ = s.Destroy()
		return nil, err
	}
	return z, nil
}

// FromUint64 creates a value holding v with the minimal number of bytes.
func FromUint64(v uint64, opts ...Option) (*Uint, error) {
	return New(append(opts, WithBytes(uint64Bytes(v)))...)
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 0, 8)
	for v != 0 {
		b = append(b, byte(v))
		v >>= 8
	}
	return b
}

// Scope returns the scope that owns z.
func (z *Uint) Scope() *Scope { return z.scope }

// Destroy releases z's scope and every value allocated against it.
// Calling Destroy again, or on another value of the same scope, returns
// ErrReleased.
func (z *Uint) Destroy() error {
	return z.scope.Destroy()
}

// Copy returns an independent duplicate of z under a new scope configured
// like z's. The copy keeps z's exact (possibly untrimmed) storage.
func (z *Uint) Copy() (*Uint, error) {
	if err := live(z); err != nil {
		return nil, z.finish("copy", err)
	}
	cfg := z.scope.cfg
	cfg.content = z.buf
	cfg.hasContent = true
	s := newScope(cfg)
	c, err := s.newValue(cfg)
	if err != nil {
		_ = s.Destroy()
		return nil, z.finish("copy", err)
	}
	return c, z.finish("copy", nil)
}

// Set makes z's storage a byte-for-byte duplicate of x's.
func (z *Uint) Set(x *Uint) (err error) {
	defer func() { err = z.finish("set", err) }()
	if err := live(z, x); err != nil {
		return err
	}
	if z == x {
		return nil
	}
	if err := z.resize(len(x.buf)); err != nil {
		return err
	}
	copy(z.buf, x.buf)
	return nil
}

// SetBytes replaces z's storage with a copy of the little-endian bytes b.
// An empty b sets z to the single-byte zero.
func (z *Uint) SetBytes(b []byte) (err error) {
	defer func() { err = z.finish("set", err) }()
	if err := live(z); err != nil {
		return err
	}
	if err := z.resize(max(len(b), 1)); err != nil {
		return err
	}
	z.buf[0] = 0
	copy(z.buf, b)
	return nil
}

// SetUint64 sets z to v using the minimal number of bytes.
func (z *Uint) SetUint64(v uint64) error {
	return z.SetBytes(uint64Bytes(v))
}

// Uint64 returns z as a uint64, or ErrOverflow when z needs more than 64 bits.
func (z *Uint) Uint64() (uint64, error) {
	if err := live(z); err != nil {
		return 0, err
	}
	n := sigLen(z.buf)
	if n > 8 {
		return 0, apperrors.OperationError{Op: "uint64", Cause: apperrors.ErrOverflow}
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(z.buf[i])
	}
	return v, nil
}

// BigInt returns z as a new *big.Int.
func (z *Uint) BigInt() *big.Int {
	z.mustLive()
	be := slices.Clone(z.buf[:max(sigLen(z.buf), 1)])
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

// SetBigInt sets z to the value of v, which must not be negative.
func (z *Uint) SetBigInt(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return z.finish("set", apperrors.ValidationError{Field: "value", Message: "must be a non-negative integer"})
	}
	le := v.Bytes()
	slices.Reverse(le)
	return z.SetBytes(le)
}

// Bytes returns a copy of z's little-endian storage, untrimmed.
func (z *Uint) Bytes() []byte {
	z.mustLive()
	return slices.Clone(z.buf)
}

// Len returns the number of bytes currently stored, including high zeros.
func (z *Uint) Len() int {
	z.mustLive()
	return len(z.buf)
}

// Cap returns the byte capacity of z's current block.
func (z *Uint) Cap() int {
	z.mustLive()
	return cap(z.buf)
}

// ─────────────────────────────────────────────────────────────────────────────
// Lifetime checks
// ─────────────────────────────────────────────────────────────────────────────

// live reports ErrReleased if any value has been destroyed, or a
// ValidationError for a nil operand.
func live(vs ...*Uint) error {
	for _, v := range vs {
		if v == nil || v.scope == nil {
			return apperrors.ValidationError{Field: "operand", Message: "nil value"}
		}
		if v.scope.released {
			return apperrors.ErrReleased
		}
	}
	return nil
}

// mustLive panics when z can no longer be read. Accessors without an error
// result use it.
func (z *Uint) mustLive() {
	if err := live(z); err != nil {
		panic(err)
	}
}

// finish wraps err with the operation name and notifies the observer.
func (z *Uint) finish(op string, err error) error {
	if err != nil {
		err = apperrors.OperationError{Op: op, Cause: err}
	}
	if z != nil && z.scope != nil {
		z.scope.observer.OperationDone(op, err)
	}
	return err
}
