package biguint

import (
	"math/big"
	"testing"
)

// FuzzArithmeticAgainstBig checks add, sub, mul and sqrt against math/big on
// arbitrary little-endian operands.
func FuzzArithmeticAgainstBig(f *testing.F) {
	f.Add([]byte{0xff, 0xfe}, []byte{0xfe, 0xea})
	f.Add([]byte{5}, []byte{6})
	f.Add([]byte{2}, []byte{1})
	f.Add([]byte{}, []byte{0, 0, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff}, []byte{0xff, 0xff, 0xff, 0xff})
	f.Add([]byte{0x00, 0x00, 0x01}, []byte{0x01})

	f.Fuzz(func(t *testing.T, a, b []byte) {
		if len(a) > 256 || len(b) > 256 {
			return
		}
		x, dx := fromBytes(a)
		defer dx()
		y, dy := fromBytes(b)
		defer dy()
		z, err := x.Scope().New(WithCapacity(1))
		if err != nil {
			t.Fatal(err)
		}
		bx, by := leBig(a), leBig(b)

		if err := z.Add(x, y); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if want := new(big.Int).Add(bx, by); z.BigInt().Cmp(want) != 0 {
			t.Errorf("Add(%x, %x) = %s, want %#x", a, b, z, want)
		}

		err = z.Sub(x, y)
		if bx.Cmp(by) < 0 {
			if err == nil {
				t.Errorf("Sub(%x, %x) should underflow", a, b)
			}
		} else if want := new(big.Int).Sub(bx, by); err != nil || z.BigInt().Cmp(want) != 0 {
			t.Errorf("Sub(%x, %x) = %s, %v, want %#x", a, b, z, err, want)
		}

		if err := z.Mul(x, y); err != nil {
			t.Fatalf("Mul failed: %v", err)
		}
		if want := new(big.Int).Mul(bx, by); z.BigInt().Cmp(want) != 0 {
			t.Errorf("Mul(%x, %x) = %s, want %#x", a, b, z, want)
		}

		if len(a) <= 32 {
			if err := z.Sqrt(x); err != nil {
				t.Fatalf("Sqrt failed: %v", err)
			}
			if want := new(big.Int).Sqrt(bx); z.BigInt().Cmp(want) != 0 {
				t.Errorf("Sqrt(%x) = %s, want %#x", a, z, want)
			}
		}
	})
}

// FuzzShiftAgainstBig checks both shift directions against math/big.
func FuzzShiftAgainstBig(f *testing.F) {
	f.Add([]byte{0x10}, uint16(4))
	f.Add([]byte{0x01, 0x02, 0x03}, uint16(9))
	f.Add([]byte{0xff}, uint16(0))
	f.Add([]byte{0xff, 0xff}, uint16(300))

	f.Fuzz(func(t *testing.T, a []byte, n uint16) {
		if len(a) > 256 {
			return
		}
		x, dx := fromBytes(a)
		defer dx()
		z, err := x.Scope().New(WithCapacity(1))
		if err != nil {
			t.Fatal(err)
		}
		bx := leBig(a)

		if err := z.Shr(x, uint64(n)); err != nil {
			t.Fatalf("Shr failed: %v", err)
		}
		if want := new(big.Int).Rsh(bx, uint(n)); z.BigInt().Cmp(want) != 0 {
			t.Errorf("Shr(%x, %d) = %s, want %#x", a, n, z, want)
		}
		if err := z.Shl(x, uint64(n)); err != nil {
			t.Fatalf("Shl failed: %v", err)
		}
		if want := new(big.Int).Lsh(bx, uint(n)); z.BigInt().Cmp(want) != 0 {
			t.Errorf("Shl(%x, %d) = %s, want %#x", a, n, z, want)
		}
	})
}
