package biguint

import (
	apperrors "github.com/agbru/biguint/internal/errors"
)

// Add sets z = x + y.
//
// z is resized to max(len(x), len(y))+1 bytes; the final carry, 0 or 1,
// lands in the top byte. z may alias x or y.
func (z *Uint) Add(x, y *Uint) (err error) {
	defer func() { err = z.finish("add", err) }()
	if err := live(z, x, y); err != nil {
		return err
	}
	return z.add(x, y)
}

func (z *Uint) add(x, y *Uint) error {
	lx, ly := len(x.buf), len(y.buf)
	n := max(lx, ly)
	if err := z.resize(n + 1); err != nil {
		return err
	}
	xb, yb, zb := x.buf[:lx], y.buf[:ly], z.buf

	var carry uint
	for i := 0; i < n; i++ {
		s := uint(byteAt(xb, i)) + uint(byteAt(yb, i)) + carry
		zb[i] = byte(s)
		carry = s >> 8
	}
	zb[n] = byte(carry)
	return nil
}

// Sub sets z = x - y.
//
// It fails with ErrUnderflow when y > x, leaving z untouched. Operands of
// different lengths are compared and subtracted numerically, so high zero
// bytes on either side are harmless. z is resized to max(len(x), len(y))
// bytes and may alias x or y.
func (z *Uint) Sub(x, y *Uint) (err error) {
	defer func() { err = z.finish("sub", err) }()
	if err := live(z, x, y); err != nil {
		return err
	}
	return z.sub(x, y)
}

func (z *Uint) sub(x, y *Uint) error {
	if x.cmp(y) < 0 {
		return apperrors.ErrUnderflow
	}
	lx, ly := len(x.buf), len(y.buf)
	n := max(lx, ly)
	if err := z.resize(n); err != nil {
		return err
	}
	xb, yb, zb := x.buf[:lx], y.buf[:ly], z.buf

	borrow := 0
	for i := 0; i < n; i++ {
		d := int(byteAt(xb, i)) - int(byteAt(yb, i)) - borrow
		borrow = 0
		if d < 0 {
			d += 256
			borrow = 1
		}
		zb[i] = byte(d)
	}
	if borrow != 0 {
		return apperrors.ErrUnderflow
	}
	return nil
}
