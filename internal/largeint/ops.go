package largeint

// Sum returns a + b.
func Sum(a, b *Int) *Int { return a.Clone().Add(b) }

// Difference returns a - b.
func Difference(a, b *Int) *Int { return a.Clone().Sub(b) }

// Product returns a * b.
func Product(a, b *Int) *Int { return a.Clone().Mul(b) }

// Quotient returns a / b truncated toward zero.
func Quotient(a, b *Int) (*Int, error) { return a.Clone().Quo(b) }

// Remainder returns the remainder of a / b, which has the sign of a.
func Remainder(a, b *Int) (*Int, error) { return a.Clone().Rem(b) }

// ShiftLeft returns a << k.
func ShiftLeft(a *Int, k int) *Int { return a.Clone().Lsh(k) }

// ShiftRight returns a >> k.
func ShiftRight(a *Int, k int) *Int { return a.Clone().Rsh(k) }

// BitAnd returns a & b on magnitudes, keeping the sign of a.
func BitAnd(a, b *Int) *Int { return a.Clone().And(b) }

// BitOr returns a | b on magnitudes, keeping the sign of a.
func BitOr(a, b *Int) *Int { return a.Clone().Or(b) }

// BitXor returns a ^ b on magnitudes, keeping the sign of a.
func BitXor(a, b *Int) *Int { return a.Clone().Xor(b) }

// Neg returns -a.
func Neg(a *Int) *Int { return a.Clone().Complement() }
