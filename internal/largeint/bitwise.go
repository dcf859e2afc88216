package largeint

// And sets the magnitude of z to |z| & |y| and returns z. The sign of z is
// kept unless the result is zero.
func (z *Int) And(y *Int) *Int {
	if y == z {
		return z
	}
	z.expand(z.sig)
	top := minInt(z.sig, y.sig)
	for i := z.sig; i > top; i-- {
		z.bits[i] = 0
	}
	for i := top; i >= 0; i-- {
		z.bits[i] &= y.bit(i)
	}
	z.contract()
	z.clearNegativeZero()
	return z
}

// Or sets the magnitude of z to |z| | |y| and returns z. The sign of z is
// kept.
func (z *Int) Or(y *Int) *Int {
	if y == z {
		return z
	}
	z.expand(maxInt(z.sig, y.sig))
	for i := y.sig; i >= 0; i-- {
		z.bits[i] |= y.bit(i)
	}
	z.contract()
	z.clearNegativeZero()
	return z
}

// Xor sets the magnitude of z to |z| ^ |y| and returns z. The sign of z is
// kept unless the result is zero.
func (z *Int) Xor(y *Int) *Int {
	if y == z {
		return z.Truncate(0)
	}
	z.expand(maxInt(z.sig, y.sig))
	for i := y.sig; i >= 0; i-- {
		z.bits[i] ^= y.bit(i)
	}
	z.contract()
	z.clearNegativeZero()
	return z
}
