package biguint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// propertyParams returns the parameters shared by the property tests.
func propertyParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 48
	return parameters
}

// genBytes generates little-endian operands, including empty and
// high-zero-padded ones.
func genBytes() gopter.Gen {
	return gen.SliceOf(gen.UInt8())
}

// fromBytes builds a value for a property check. The value's scope is
// destroyed by the returned cleanup.
func fromBytes(b []byte) (*Uint, func()) {
	z, err := New(WithBytes(b))
	if err != nil {
		panic(err)
	}
	return z, func() { _ = z.Destroy() }
}

// leBig converts little-endian bytes to a big.Int.
func leBig(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

func TestArithmeticProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("add is commutative", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			s1, _ := x.Scope().New()
			s2, _ := x.Scope().New()
			if s1.Add(x, y) != nil || s2.Add(y, x) != nil {
				return false
			}
			return s1.Equals(s2)
		},
		genBytes(), genBytes(),
	))

	properties.Property("add agrees with math/big", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			if err := x.Add(x, y); err != nil {
				return false
			}
			return x.BigInt().Cmp(new(big.Int).Add(leBig(a), leBig(b))) == 0
		},
		genBytes(), genBytes(),
	))

	properties.Property("sub inverts add", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			sum, _ := x.Scope().New()
			if sum.Add(x, y) != nil || sum.Sub(sum, y) != nil {
				return false
			}
			return sum.Equals(x)
		},
		genBytes(), genBytes(),
	))

	properties.Property("sub rejects a larger subtrahend", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			err := x.Sub(x, y)
			if leBig(a).Cmp(leBig(b)) < 0 {
				return err != nil
			}
			return err == nil && x.BigInt().Cmp(new(big.Int).Sub(leBig(a), leBig(b))) == 0
		},
		genBytes(), genBytes(),
	))

	properties.Property("mul agrees with math/big", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			z, _ := x.Scope().New()
			if err := z.Mul(x, y); err != nil {
				return false
			}
			return z.BigInt().Cmp(new(big.Int).Mul(leBig(a), leBig(b))) == 0
		},
		genBytes(), genBytes(),
	))

	properties.Property("bitwise ops agree with math/big", prop.ForAll(
		func(a, b []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			y, dy := fromBytes(b)
			defer dy()
			z, _ := x.Scope().New()
			bx, by := leBig(a), leBig(b)
			if z.And(x, y) != nil || z.BigInt().Cmp(new(big.Int).And(bx, by)) != 0 {
				return false
			}
			if z.Or(x, y) != nil || z.BigInt().Cmp(new(big.Int).Or(bx, by)) != 0 {
				return false
			}
			return z.Xor(x, y) == nil && z.BigInt().Cmp(new(big.Int).Xor(bx, by)) == 0
		},
		genBytes(), genBytes(),
	))

	properties.TestingRun(t)
}

func TestShiftSqrtAndNormalizeProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("shr by zero is identity", prop.ForAll(
		func(a []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			z, _ := x.Scope().New()
			return z.Shr(x, 0) == nil && z.Equals(x)
		},
		genBytes(),
	))

	properties.Property("shr past the bit length is zero", prop.ForAll(
		func(a []byte, extra uint16) bool {
			x, dx := fromBytes(a)
			defer dx()
			z, _ := x.Scope().New()
			n := uint64(x.BitLen()) + uint64(extra)
			return z.Shr(x, n) == nil && z.IsZero()
		},
		genBytes(), gen.UInt16(),
	))

	properties.Property("shr agrees with math/big", prop.ForAll(
		func(a []byte, n uint16) bool {
			x, dx := fromBytes(a)
			defer dx()
			if err := x.Shr(x, uint64(n%512)); err != nil {
				return false
			}
			return x.BigInt().Cmp(new(big.Int).Rsh(leBig(a), uint(n%512))) == 0
		},
		genBytes(), gen.UInt16(),
	))

	properties.Property("sqrt is the floor root", prop.ForAll(
		func(a []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			s, _ := x.Scope().New(WithCapacity(1))
			if err := s.Sqrt(x); err != nil {
				return false
			}
			r := s.BigInt()
			v := leBig(a)
			r1 := new(big.Int).Add(r, big.NewInt(1))
			return new(big.Int).Mul(r, r).Cmp(v) <= 0 && new(big.Int).Mul(r1, r1).Cmp(v) > 0
		},
		gen.SliceOfN(24, gen.UInt8()),
	))

	properties.Property("trim is idempotent and keeps the value", prop.ForAll(
		func(a []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			before := x.BigInt()
			x.Trim()
			n := x.Len()
			x.Trim()
			return x.Len() == n && n >= 1 && x.BigInt().Cmp(before) == 0
		},
		genBytes(),
	))

	properties.Property("copy equals its source", prop.ForAll(
		func(a []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			c, err := x.Copy()
			if err != nil {
				return false
			}
			defer c.Destroy()
			return c.Equals(x) && x.Equals(c)
		},
		genBytes(),
	))

	properties.Property("xor with itself is zero", prop.ForAll(
		func(a []byte) bool {
			x, dx := fromBytes(a)
			defer dx()
			return x.Xor(x, x) == nil && x.IsZero()
		},
		genBytes(),
	))

	properties.TestingRun(t)
}
