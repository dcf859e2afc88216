package largeint

import "math"

// Lsh shifts the magnitude of z left by k bits and returns z. A negative k
// shifts right by -k. It panics if the result length overflows int.
func (z *Int) Lsh(k int) *Int {
	if k < 0 {
		if k == math.MinInt {
			return z.Truncate(0)
		}
		return z.Rsh(-k)
	}
	if k == 0 || z.IsZero() {
		return z
	}
	if k > math.MaxInt-1-z.sig {
		panic(errShiftOverflow)
	}
	z.expand(z.sig + k)
	for i := z.sig; i >= k; i-- {
		z.bits[i] = z.bits[i-k]
	}
	for i := k - 1; i >= 0; i-- {
		z.bits[i] = 0
	}
	z.contract()
	return z
}

// Rsh shifts the magnitude of z right by k bits and returns z. Bits shifted
// out are lost, so negative values round toward zero. A negative k shifts
// left by -k, so Rsh(math.MinInt) of a non-zero value panics like an
// oversized Lsh.
func (z *Int) Rsh(k int) *Int {
	if k < 0 {
		if k == math.MinInt {
			if z.IsZero() {
				return z
			}
			panic(errShiftOverflow)
		}
		return z.Lsh(-k)
	}
	if k == 0 {
		return z
	}
	if k > z.sig {
		return z.Truncate(0)
	}
	top := z.sig - k
	for i := 0; i <= top; i++ {
		z.bits[i] = z.bits[i+k]
	}
	for i := top + 1; i <= z.sig; i++ {
		z.bits[i] = 0
	}
	z.sig = top
	z.contract()
	z.clearNegativeZero()
	return z
}
