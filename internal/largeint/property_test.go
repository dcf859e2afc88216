package largeint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 160
	return parameters
}

// TestArithmetic_PropertyBased checks Add, Sub and Mul against math/big.
func TestArithmetic_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("a + b matches math/big", prop.ForAll(
		func(a, b *Int) bool {
			got := Sum(a, b)
			return invariantsHold(got) && toBig(got).Cmp(new(big.Int).Add(toBig(a), toBig(b))) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("a - b matches math/big", prop.ForAll(
		func(a, b *Int) bool {
			got := Difference(a, b)
			return invariantsHold(got) && toBig(got).Cmp(new(big.Int).Sub(toBig(a), toBig(b))) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("a * b matches math/big", prop.ForAll(
		func(a, b *Int) bool {
			got := Product(a, b)
			return invariantsHold(got) && toBig(got).Cmp(new(big.Int).Mul(toBig(a), toBig(b))) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("(a + b) - b == a", prop.ForAll(
		func(a, b *Int) bool {
			return Sum(a, b).Sub(b).Equal(a)
		},
		genInt(), genInt(),
	))

	properties.Property("a++ then a-- restores a", prop.ForAll(
		func(a *Int) bool {
			return a.Clone().Inc().Dec().Equal(a)
		},
		genInt(),
	))

	properties.TestingRun(t)
}

// TestDivision_PropertyBased checks truncating division and the
// quotient/remainder identity.
func TestDivision_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("a / b and a % b match math/big Quo and Rem", prop.ForAll(
		func(a, b *Int) bool {
			if b.IsZero() {
				return true
			}
			q, err := Quotient(a, b)
			if err != nil {
				return false
			}
			r, err := Remainder(a, b)
			if err != nil {
				return false
			}
			wantQ, wantR := new(big.Int).QuoRem(toBig(a), toBig(b), new(big.Int))
			return invariantsHold(q) && invariantsHold(r) &&
				toBig(q).Cmp(wantQ) == 0 && toBig(r).Cmp(wantR) == 0
		},
		genInt(), genInt(),
	))

	properties.Property("(a / b) * b + a % b == a", prop.ForAll(
		func(a, b *Int) bool {
			if b.IsZero() {
				return true
			}
			q := a.Clone()
			r, err := q.QuoRem(b)
			if err != nil {
				return false
			}
			return q.Mul(b).Add(r).Equal(a) && r.IsSmaller(b)
		},
		genInt(), genInt(),
	))

	properties.Property("division by zero leaves the operand unchanged", prop.ForAll(
		func(a *Int) bool {
			x := a.Clone()
			_, err := x.Quo(Zero())
			return err == ErrDivideByZero && x.Equal(a)
		},
		genInt(),
	))

	properties.TestingRun(t)
}

// TestShiftAndBitwise_PropertyBased checks that shifts and bitwise operators
// act on magnitudes and keep the sign of the left operand.
func TestShiftAndBitwise_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("a << k matches |a| << k with the sign of a", prop.ForAll(
		func(a *Int, k uint) bool {
			got := ShiftLeft(a, int(k))
			want := new(big.Int).Lsh(new(big.Int).Abs(toBig(a)), k)
			if a.Negative() {
				want.Neg(want)
			}
			return invariantsHold(got) && toBig(got).Cmp(want) == 0
		},
		genInt(), gen.UIntRange(0, 200),
	))

	properties.Property("a >> k matches |a| >> k with the sign of a", prop.ForAll(
		func(a *Int, k uint) bool {
			got := ShiftRight(a, int(k))
			want := new(big.Int).Rsh(new(big.Int).Abs(toBig(a)), k)
			if a.Negative() {
				want.Neg(want)
			}
			return invariantsHold(got) && toBig(got).Cmp(want) == 0
		},
		genInt(), gen.UIntRange(0, 200),
	))

	properties.Property("(a << k) >> k == a", prop.ForAll(
		func(a *Int, k uint) bool {
			return ShiftLeft(a, int(k)).Rsh(int(k)).Equal(a)
		},
		genInt(), gen.UIntRange(0, 200),
	))

	ops := map[string]struct {
		apply  func(a, b *Int) *Int
		oracle func(z, x, y *big.Int) *big.Int
	}{
		"&": {BitAnd, (*big.Int).And},
		"|": {BitOr, (*big.Int).Or},
		"^": {BitXor, (*big.Int).Xor},
	}
	for name, op := range ops {
		op := op
		properties.Property("a "+name+" b matches the magnitude oracle", prop.ForAll(
			func(a, b *Int) bool {
				got := op.apply(a, b)
				return invariantsHold(got) && toBig(got).Cmp(magnitudeOp(toBig(a), toBig(b), op.oracle)) == 0
			},
			genInt(), genInt(),
		))
	}

	properties.TestingRun(t)
}

// TestOrderingAndText_PropertyBased checks comparisons against math/big and
// the text and binary round trips.
func TestOrderingAndText_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("Cmp matches math/big", prop.ForAll(
		func(a, b *Int) bool {
			want := toBig(a).Cmp(toBig(b))
			return a.Cmp(b) == want &&
				a.Less(b) == (want < 0) &&
				a.GreaterEqual(b) == (want >= 0) &&
				a.Equal(b) == (want == 0)
		},
		genInt(), genInt(),
	))

	properties.Property("exactly one of <, ==, > holds", prop.ForAll(
		func(a, b *Int) bool {
			n := 0
			for _, ok := range []bool{a.Less(b), a.Equal(b), a.Greater(b)} {
				if ok {
					n++
				}
			}
			return n == 1
		},
		genInt(), genInt(),
	))

	properties.Property("binary text round trip", prop.ForAll(
		func(a *Int) bool {
			back, err := Parse(a.String())
			return err == nil && back.Equal(a) && a.String() == toBig(a).Text(2)
		},
		genInt(),
	))

	properties.Property("decimal text round trip", prop.ForAll(
		func(a *Int) bool {
			if a.Decimal() != toBig(a).String() {
				return false
			}
			back, err := ParseDecimal(a.Decimal())
			return err == nil && back.Equal(a)
		},
		genInt(),
	))

	properties.Property("binary encoding round trip", prop.ForAll(
		func(a *Int) bool {
			buf, err := a.MarshalBinary()
			if err != nil {
				return false
			}
			var back Int
			return back.UnmarshalBinary(buf) == nil && back.Equal(a)
		},
		genInt(),
	))

	properties.Property("Truncate(n) keeps the low n bits of the magnitude", prop.ForAll(
		func(a *Int, n uint) bool {
			got := a.Clone().Truncate(int(n))
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), n), big.NewInt(1))
			want := new(big.Int).And(new(big.Int).Abs(toBig(a)), mask)
			if a.Negative() {
				want.Neg(want)
			}
			return invariantsHold(got) && toBig(got).Cmp(want) == 0
		},
		genInt(), gen.UIntRange(0, 200),
	))

	properties.TestingRun(t)
}
