package biguint

// And sets z = x & y. Both operands are zero-extended to the longer length,
// so every byte past the shorter operand is zero in the result.
func (z *Uint) And(x, y *Uint) error {
	return z.bitwise("and", x, y, func(a, b byte) byte { return a & b })
}

// Or sets z = x | y. Bytes past the shorter operand are copied from the
// longer one.
func (z *Uint) Or(x, y *Uint) error {
	return z.bitwise("or", x, y, func(a, b byte) byte { return a | b })
}

// Xor sets z = x ^ y. Bytes past the shorter operand are copied from the
// longer one.
func (z *Uint) Xor(x, y *Uint) error {
	return z.bitwise("xor", x, y, func(a, b byte) byte { return a ^ b })
}

// bitwise combines x and y byte by byte into z, resized to the longer
// operand's length. A single index-ordered pass keeps aliasing safe.
func (z *Uint) bitwise(op string, x, y *Uint, f func(a, b byte) byte) (err error) {
	defer func() { err = z.finish(op, err) }()
	if err := live(z, x, y); err != nil {
		return err
	}
	lx, ly := len(x.buf), len(y.buf)
	n := max(lx, ly)
	if err := z.resize(n); err != nil {
		return err
	}
	xb, yb, zb := x.buf[:lx], y.buf[:ly], z.buf
	for i := 0; i < n; i++ {
		zb[i] = f(byteAt(xb, i), byteAt(yb, i))
	}
	return nil
}
