package biguint

import "math/bits"

// Trim drops redundant high-order zero bytes, never going below one byte.
// It is idempotent and keeps the block's capacity.
func (z *Uint) Trim() {
	z.mustLive()
	z.trim()
}

func (z *Uint) trim() {
	z.buf = z.buf[:max(sigLen(z.buf), 1)]
}

// IsZero reports whether every stored byte is zero, whatever the length.
func (z *Uint) IsZero() bool {
	z.mustLive()
	for _, b := range z.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equals reports whether x and y hold the same numeric value. The shorter
// operand is treated as zero-extended, so trimmed and untrimmed forms of a
// number are equal.
func (x *Uint) Equals(y *Uint) bool {
	x.mustLive()
	y.mustLive()
	n := max(len(x.buf), len(y.buf))
	for i := 0; i < n; i++ {
		if byteAt(x.buf, i) != byteAt(y.buf, i) {
			return false
		}
	}
	return true
}

// Cmp compares x and y numerically and returns -1, 0 or +1.
func (x *Uint) Cmp(y *Uint) int {
	x.mustLive()
	y.mustLive()
	return x.cmp(y)
}

func (x *Uint) cmp(y *Uint) int {
	lx, ly := sigLen(x.buf), sigLen(y.buf)
	switch {
	case lx < ly:
		return -1
	case lx > ly:
		return 1
	}
	for i := lx - 1; i >= 0; i-- {
		switch {
		case x.buf[i] < y.buf[i]:
			return -1
		case x.buf[i] > y.buf[i]:
			return 1
		}
	}
	return 0
}

// BitLen returns the number of significant bits of x; zero has bit length 0.
func (x *Uint) BitLen() int {
	x.mustLive()
	return x.bitLen()
}

func (x *Uint) bitLen() int {
	n := sigLen(x.buf)
	if n == 0 {
		return 0
	}
	return (n-1)*8 + bits.Len8(x.buf[n-1])
}

// sigLen returns the length of b without its high-order zero bytes.
func sigLen(b []byte) int {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return n
}
