// Package biguint implements an arbitrary-precision unsigned integer backed
// by a growable little-endian byte buffer.
//
// Every value is owned by a Scope, a small arena that accounts for all bytes
// allocated on the value's behalf, including temporaries created while an
// operation runs. Destroying the value destroys its scope; any value sharing
// that scope becomes unusable at the same time.
//
// Operations follow the math/big receiver convention: the receiver is the
// destination and may alias either operand.
//
//	a, _ := biguint.New(biguint.WithBytes([]byte{0xff, 0xfe}))
//	b, _ := biguint.New(biguint.WithBytes([]byte{0xfe, 0xea}))
//	sum, _ := biguint.New()
//	_ = sum.Add(a, b)
//	sum.Trim()
//	fmt.Println(sum) // 0x1e9fd
//
// Values are not normalized implicitly. Trailing (high-order) zero bytes
// survive until Trim is called, and every operation accepts such operands.
//
// A value and its scope must not be mutated from several goroutines at once.
package biguint
