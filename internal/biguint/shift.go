package biguint

import (
	"errors"
	"math"

	"fortio.org/safecast"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// Shr sets z = x >> n, that is floor(x / 2^n), for a shift of n bits.
//
// Whole bytes are dropped first, then the remaining 0-7 bits are shifted in
// from the next higher byte. Shifting by at least len(x) bytes yields the
// single-byte zero. A shift whose byte count does not fit in an int fails
// with ErrShiftOverflow.
func (z *Uint) Shr(x *Uint, n uint64) (err error) {
	defer func() { err = z.finish("shr", err) }()
	if err := live(z, x); err != nil {
		return err
	}
	return z.shr(x, n)
}

// ShrBy is Shr with the bit count given as a value. Counts wider than 64
// bits fail with ErrShiftOverflow.
func (z *Uint) ShrBy(x, n *Uint) (err error) {
	defer func() { err = z.finish("shr", err) }()
	if err := live(z, x, n); err != nil {
		return err
	}
	count, err := n.Uint64()
	if errors.Is(err, apperrors.ErrOverflow) {
		return apperrors.ErrShiftOverflow
	}
	if err != nil {
		return err
	}
	return z.shr(x, count)
}

func (z *Uint) shr(x *Uint, n uint64) error {
	k, err := safecast.Conv[int](n / 8)
	if err != nil {
		return apperrors.ErrShiftOverflow
	}
	s := uint(n % 8)
	lx := len(x.buf)

	if k >= lx {
		if err := z.resize(1); err != nil {
			return err
		}
		z.buf[0] = 0
		return nil
	}

	m := lx - k
	if z != x {
		if err := z.resize(m); err != nil {
			return err
		}
	}
	xb, zb := x.buf[:lx], z.buf
	// Index i reads x[i+k] and x[i+k+1], both at or above i, so an
	// in-place ascending pass never reads a byte it already wrote.
	for i := 0; i < m; i++ {
		v := xb[i+k] >> s
		if i+k+1 < lx {
			v |= xb[i+k+1] << (8 - s)
		}
		zb[i] = v
	}
	if z == x {
		z.buf = z.buf[:m]
	}
	return nil
}

// MaxShlBytes bounds the whole-byte part of a left shift.
const MaxShlBytes = 1 << 30

// Shl sets z = x << n, that is x * 2^n. The result holds len(x) + n/8 + 1
// bytes. Shifts of more than MaxShlBytes bytes fail with ErrShiftOverflow; a
// result beyond the scope's memory limit fails with a MemoryError.
func (z *Uint) Shl(x *Uint, n uint64) (err error) {
	defer func() { err = z.finish("shl", err) }()
	if err := live(z, x); err != nil {
		return err
	}
	return z.shl(x, n)
}

func (z *Uint) shl(x *Uint, n uint64) error {
	k, err := safecast.Conv[int](n / 8)
	if err != nil {
		return apperrors.ErrShiftOverflow
	}
	s := uint(n % 8)
	lx := len(x.buf)
	if k > MaxShlBytes || k > math.MaxInt-lx-1 {
		return apperrors.ErrShiftOverflow
	}
	m := lx + k + 1
	if err := z.resize(m); err != nil {
		return err
	}
	xb, zb := x.buf[:lx], z.buf
	// Descending pass: index i reads x[i-k] and x[i-k-1], both at or below i.
	for i := m - 1; i >= 0; i-- {
		j := i - k
		var v byte
		if j >= 0 && j < lx {
			v = xb[j] << s
		}
		if j-1 >= 0 && j-1 < lx {
			v |= xb[j-1] >> (8 - s)
		}
		zb[i] = v
	}
	return nil
}
