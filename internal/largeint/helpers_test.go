package largeint

import (
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// toBig converts x to a math/big value for oracle comparisons.
func toBig(x *Int) *big.Int {
	b := new(big.Int)
	for i := 0; i <= x.sig; i++ {
		if x.bit(i) == 1 {
			b.SetBit(b, i, 1)
		}
	}
	if x.neg {
		b.Neg(b)
	}
	return b
}

// fromBig converts a math/big value through its binary text.
func fromBig(t testing.TB, b *big.Int) *Int {
	t.Helper()
	x, err := Parse(b.Text(2))
	if err != nil {
		t.Fatalf("Parse(%s): %v", b.Text(2), err)
	}
	return x
}

// mustParse parses binary text or fails the test.
func mustParse(t testing.TB, s string) *Int {
	t.Helper()
	x, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return x
}

// magnitudeOp applies op to |a| and |b| and gives the result the sign of a,
// which is how the shift and bitwise operators of this package behave.
func magnitudeOp(a, b *big.Int, op func(z, x, y *big.Int) *big.Int) *big.Int {
	r := op(new(big.Int), new(big.Int).Abs(a), new(big.Int).Abs(b))
	if a.Sign() < 0 {
		r.Neg(r)
	}
	return r
}

// checkInvariants verifies the representation invariants of x.
func checkInvariants(t testing.TB, x *Int) {
	t.Helper()
	if len(x.bits) > 0 && x.sig >= len(x.bits) {
		t.Errorf("significant index %d beyond capacity %d", x.sig, len(x.bits)-1)
	}
	if x.sig > 0 && x.bits[x.sig] == 0 {
		t.Errorf("leading zero bit at significant index %d", x.sig)
	}
	if x.neg && x.IsZero() {
		t.Error("zero carries a negative sign")
	}
	for i := 0; i <= x.sig && i < len(x.bits); i++ {
		if x.bits[i] > 1 {
			t.Errorf("bit %d holds %d", i, x.bits[i])
		}
	}
}

func invariantsHold(x *Int) bool {
	if len(x.bits) > 0 && x.sig >= len(x.bits) {
		return false
	}
	if x.sig > 0 && x.bits[x.sig] == 0 {
		return false
	}
	return !(x.neg && x.IsZero())
}

// genInt generates signed values of up to MaxSize bits.
func genInt() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.SliceOf(gen.UInt8Range(0, 1)),
	).Map(func(v []interface{}) *Int {
		neg := v[0].(bool)
		digits := v[1].([]uint8)
		var b strings.Builder
		if neg {
			b.WriteByte('-')
		}
		b.WriteByte('0')
		for _, d := range digits {
			b.WriteByte('0' + d)
		}
		x, err := Parse(b.String())
		if err != nil {
			panic(err)
		}
		return x
	})
}
