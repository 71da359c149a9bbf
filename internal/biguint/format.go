package biguint

import (
	"encoding/hex"
	"strings"
)

// Hex renders every stored byte, most significant first, two lowercase
// digits per byte. High zero bytes are kept, so the output reflects the
// storage length.
func (z *Uint) Hex() string {
	z.mustLive()
	return hexBytesMSB(z.buf)
}

// String renders the numeric value as 0x-prefixed hexadecimal without
// leading zeros. It implements fmt.Stringer and is safe on released values.
func (z *Uint) String() string {
	if z == nil || z.scope == nil {
		return "<nil>"
	}
	if z.scope.released {
		return "<released>"
	}
	n := sigLen(z.buf)
	if n == 0 {
		return "0x0"
	}
	s := strings.TrimLeft(hexBytesMSB(z.buf[:n]), "0")
	return "0x" + s
}

func hexBytesMSB(b []byte) string {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return hex.EncodeToString(be)
}
