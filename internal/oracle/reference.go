package oracle

import "math/big"

// Reference is an independent big-integer implementation that largeint
// results are checked against. Operands passed to Binary for "quo" and
// "rem" are never zero. Bitwise operators and shifts receive non-negative
// operands.
type Reference interface {
	// Name identifies the implementation in reports.
	Name() string
	// Binary applies one of add, sub, mul, quo, rem, and, or, xor.
	Binary(op string, a, b *big.Int) *big.Int
	// Shift applies shl or shr.
	Shift(op string, a *big.Int, k uint) *big.Int
}

// BigReference checks against math/big.
type BigReference struct{}

// Name returns "math/big".
func (BigReference) Name() string { return "math/big" }

// Binary implements Reference.
func (BigReference) Binary(op string, a, b *big.Int) *big.Int {
	z := new(big.Int)
	switch op {
	case OpAdd:
		return z.Add(a, b)
	case OpSub:
		return z.Sub(a, b)
	case OpMul:
		return z.Mul(a, b)
	case OpQuo:
		return z.Quo(a, b)
	case OpRem:
		return z.Rem(a, b)
	case OpAnd:
		return z.And(a, b)
	case OpOr:
		return z.Or(a, b)
	case OpXor:
		return z.Xor(a, b)
	}
	panic("oracle: unknown binary op " + op)
}

// Shift implements Reference.
func (BigReference) Shift(op string, a *big.Int, k uint) *big.Int {
	if op == OpShl {
		return new(big.Int).Lsh(a, k)
	}
	return new(big.Int).Rsh(a, k)
}
