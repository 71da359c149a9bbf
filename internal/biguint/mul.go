package biguint

import (
	"math"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// Mul sets z = x * y using schoolbook multiplication.
//
// The product is accumulated into a fresh len(x)+len(y) byte block on z's
// scope and then swapped into z, so z may alias x, y or both. The result is
// not trimmed.
func (z *Uint) Mul(x, y *Uint) (err error) {
	defer func() { err = z.finish("mul", err) }()
	if err := live(z, x, y); err != nil {
		return err
	}
	return z.mul(x, y)
}

func (z *Uint) mul(x, y *Uint) error {
	xb, yb := x.buf, y.buf
	lx, ly := len(xb), len(yb)
	if lx > math.MaxInt-ly {
		return apperrors.MemoryError{Requested: math.MaxUint64, Limit: uint64(z.scope.limit)}
	}

	t, err := z.scope.temp(lx + ly)
	if err != nil {
		return err
	}
	defer t.release()

	acc := t.buf
	for i := 0; i < lx; i++ {
		a := uint(xb[i])
		if a == 0 {
			continue
		}
		var carry uint
		for j := 0; j < ly; j++ {
			p := uint(acc[i+j]) + a*uint(yb[j]) + carry
			acc[i+j] = byte(p)
			carry = p >> 8
		}
		// The carry may ripple through several higher bytes; the product
		// always fits in lx+ly bytes so k stays in range.
		for k := i + ly; carry != 0; k++ {
			p := uint(acc[k]) + carry
			acc[k] = byte(p)
			carry = p >> 8
		}
	}

	z.swap(t)
	return nil
}
