//go:build gmp

package oracle

import (
	"math/big"

	"github.com/ncw/gmp"
)

// GMPAvailable reports whether the binary was built with the gmp tag.
const GMPAvailable = true

// GMPReference checks against the GNU Multiple Precision library.
type GMPReference struct{}

// Name returns "gmp".
func (GMPReference) Name() string { return "gmp" }

func toGMP(x *big.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(x.Text(16), 16)
	return z
}

func fromGMP(x *gmp.Int) *big.Int {
	z, _ := new(big.Int).SetString(x.String(), 10)
	return z
}

// Binary implements Reference.
func (GMPReference) Binary(op string, a, b *big.Int) *big.Int {
	x, y, z := toGMP(a), toGMP(b), new(gmp.Int)
	switch op {
	case OpAdd:
		z.Add(x, y)
	case OpSub:
		z.Sub(x, y)
	case OpMul:
		z.Mul(x, y)
	case OpQuo:
		z.Quo(x, y)
	case OpRem:
		z.Rem(x, y)
	case OpAnd:
		z.And(x, y)
	case OpOr:
		z.Or(x, y)
	case OpXor:
		z.Xor(x, y)
	default:
		panic("oracle: unknown binary op " + op)
	}
	return fromGMP(z)
}

// Shift implements Reference.
func (GMPReference) Shift(op string, a *big.Int, k uint) *big.Int {
	z := new(gmp.Int)
	if op == OpShl {
		z.Lsh(toGMP(a), k)
	} else {
		z.Rsh(toGMP(a), k)
	}
	return fromGMP(z)
}

// NewReference returns the reference implementation with the given name.
func NewReference(name string) (Reference, bool) {
	switch name {
	case "", "big", "math/big":
		return BigReference{}, true
	case "gmp":
		return GMPReference{}, true
	}
	return nil, false
}
