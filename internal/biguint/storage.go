// This file implements the growth policy of a value's byte buffer.

package biguint

import (
	"errors"
	"math"

	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/logging"
)

// resize sets the length of z's storage to n bytes. Bytes below the old
// length are preserved and bytes in [old, n) are zeroed. Capacity never
// shrinks. On failure z is unchanged.
func (z *Uint) resize(n int) error {
	old := len(z.buf)
	if n <= cap(z.buf) {
		z.buf = z.buf[:n]
		if n > old {
			clear(z.buf[old:])
		}
		return nil
	}
	if err := z.grow(n); err != nil {
		return err
	}
	z.buf = z.buf[:n]
	clear(z.buf[old:])
	return nil
}

// grow makes room for at least n bytes. It first tries to extend the block
// in place at the top of the slab, then allocates a new block of twice the
// current capacity (or exactly n when doubling does not fit the limit),
// copies the live bytes and frees the old block.
func (z *Uint) grow(n int) error {
	s := z.scope
	want := n
	if c := cap(z.buf); c <= math.MaxInt/2 && 2*c > n {
		want = 2 * c
	}

	for _, size := range []int{want, n} {
		if buf, ok := s.extend(z.buf, z.off, size); ok {
			z.buf = buf
			return nil
		}
	}

	buf, off, err := s.alloc(want)
	var memErr apperrors.MemoryError
	if err != nil && want > n && errors.As(err, &memErr) {
		buf, off, err = s.alloc(n)
	}
	if err != nil {
		s.logger.Error("allocation failed", err, logging.Int("requested", n))
		return err
	}

	s.logger.Debug("buffer reallocated",
		logging.Int("from", cap(z.buf)),
		logging.Int("to", cap(buf)),
		logging.Int("len", len(z.buf)))

	buf = buf[:len(z.buf)]
	copy(buf, z.buf)
	s.free(z.buf, z.off)
	z.buf, z.off = buf, off
	return nil
}

// swap exchanges the storage of z and t. Both must belong to the same scope.
func (z *Uint) swap(t *Uint) {
	z.buf, t.buf = t.buf, z.buf
	z.off, t.off = t.off, z.off
}

// release returns a temporary's block to its scope.
func (t *Uint) release() {
	t.scope.free(t.buf, t.off)
	t.buf = nil
	t.off = -1
}

// byteAt returns b[i], or zero past the end of b.
func byteAt(b []byte, i int) byte {
	if i < len(b) {
		return b[i]
	}
	return 0
}
