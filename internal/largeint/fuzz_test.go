package largeint

import (
	"math/big"
	"testing"
)

// FuzzParse verifies that any text accepted by Parse round-trips through
// String and agrees with math/big.
func FuzzParse(f *testing.F) {
	for _, seed := range []string{"0", "1", "-101", "--11", "+1", "  1010", "102", "", "-"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		x, err := Parse(s)
		if err != nil {
			return
		}
		checkInvariants(t, x)
		back, err := Parse(x.String())
		if err != nil {
			t.Fatalf("Parse(%q) of formatted value: %v", x.String(), err)
		}
		if !back.Equal(x) {
			t.Errorf("round trip %q -> %s -> %s", s, x, back)
		}
	})
}

// FuzzArithmeticVsBigInt checks Add, Sub, Mul, Quo and Rem against math/big
// for arbitrary byte-derived operands.
func FuzzArithmeticVsBigInt(f *testing.F) {
	f.Add([]byte{0x05, 0x03}, false, true)
	f.Add([]byte{0x11, 0x05}, true, false)
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, true, true)
	f.Add(make([]byte, 32), false, false)

	f.Fuzz(func(t *testing.T, data []byte, negA, negB bool) {
		if len(data) < 2 || len(data) > 256 {
			return
		}
		half := len(data) / 2
		ba := new(big.Int).SetBytes(data[:half])
		bb := new(big.Int).SetBytes(data[half:])
		if negA {
			ba.Neg(ba)
		}
		if negB {
			bb.Neg(bb)
		}
		a, b := fromBig(t, ba), fromBig(t, bb)

		check := func(op string, got *Int, want *big.Int) {
			t.Helper()
			checkInvariants(t, got)
			if toBig(got).Cmp(want) != 0 {
				t.Errorf("%s: got %s, want %s", op, got.Decimal(), want)
			}
		}
		check("add", Sum(a, b), new(big.Int).Add(ba, bb))
		check("sub", Difference(a, b), new(big.Int).Sub(ba, bb))
		check("mul", Product(a, b), new(big.Int).Mul(ba, bb))

		if bb.Sign() == 0 {
			if _, err := Quotient(a, b); err != ErrDivideByZero {
				t.Errorf("division by zero returned %v", err)
			}
			return
		}
		q, err := Quotient(a, b)
		if err != nil {
			t.Fatalf("Quotient: %v", err)
		}
		r, err := Remainder(a, b)
		if err != nil {
			t.Fatalf("Remainder: %v", err)
		}
		wantQ, wantR := new(big.Int).QuoRem(ba, bb, new(big.Int))
		check("quo", q, wantQ)
		check("rem", r, wantR)
	})
}
