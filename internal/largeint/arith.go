package largeint

// plus adds |y| to |z| bit by bit, ignoring both signs.
func (z *Int) plus(y *Int) {
	z.expand(maxInt(z.sig, y.sig))
	var carry uint8
	i := 0
	for ; i <= y.sig; i++ {
		s := z.bits[i] + y.bit(i) + carry
		z.bits[i] = s & 1
		carry = s >> 1
	}
	for ; carry != 0; i++ {
		if i > z.sig {
			z.expand(i)
		}
		s := z.bits[i] + carry
		z.bits[i] = s & 1
		carry = s >> 1
	}
	z.contract()
}

// minus subtracts |y| from |z|, ignoring both signs. The caller guarantees
// |z| >= |y|.
func (z *Int) minus(y *Int) {
	z.expand(z.sig)
	var borrow uint8
	i := 0
	for ; i <= y.sig; i++ {
		d := z.bits[i] + 2 - y.bit(i) - borrow
		z.bits[i] = d & 1
		borrow = 1 - d>>1
	}
	for ; borrow != 0 && i <= z.sig; i++ {
		d := z.bits[i] + 2 - borrow
		z.bits[i] = d & 1
		borrow = 1 - d>>1
	}
	z.contract()
}

// Add sets z to z + y and returns z.
func (z *Int) Add(y *Int) *Int {
	if y == z {
		y = y.Clone()
	}
	switch {
	case z.neg == y.neg:
		z.plus(y)
	case z.IsSmaller(y):
		m := z.Clone()
		z.Set(y)
		z.minus(m)
	default:
		z.minus(y)
	}
	z.clearNegativeZero()
	return z
}

// Sub sets z to z - y and returns z.
func (z *Int) Sub(y *Int) *Int {
	if y == z {
		y = y.Clone()
	}
	switch {
	case z.neg != y.neg:
		z.plus(y)
	case z.IsSmaller(y):
		m := z.Clone()
		z.Set(y)
		z.minus(m)
		z.Complement()
	default:
		z.minus(y)
	}
	z.clearNegativeZero()
	return z
}

// Inc adds one to z and returns z.
func (z *Int) Inc() *Int { return z.Add(New(1)) }

// Dec subtracts one from z and returns z.
func (z *Int) Dec() *Int { return z.Sub(New(1)) }

// PostInc adds one to z and returns the value z held before.
func (z *Int) PostInc() *Int {
	old := z.Clone()
	z.Inc()
	return old
}

// PostDec subtracts one from z and returns the value z held before.
func (z *Int) PostDec() *Int {
	old := z.Clone()
	z.Dec()
	return old
}

// Mul sets z to z * y and returns z.
//
// The operand with fewer significant bits is scanned; for every set bit at
// position i the other operand shifted left by i is accumulated.
func (z *Int) Mul(y *Int) *Int {
	z.mul(y, nil)
	return z
}

// mul implements Mul, polling p between rows. z is only written once the
// product is complete, so a cancelled call leaves it unchanged.
func (z *Int) mul(y *Int, p *poller) error {
	neg := z.neg != y.neg
	scan, shifted := y.Clone(), z.Clone()
	if z.sig < y.sig {
		scan, shifted = shifted, scan
	}
	shifted.neg = false

	acc := Zero()
	for i := 0; i <= scan.sig; i++ {
		if err := p.poll(); err != nil {
			return err
		}
		if scan.bit(i) == 1 {
			acc.plus(shifted)
		}
		if i < scan.sig {
			shifted.Lsh(1)
		}
	}
	z.Set(acc)
	z.neg = neg
	z.clearNegativeZero()
	return nil
}

// divmod divides |z| by |y| in place, leaving the magnitude of the remainder
// in z (sign untouched) and returning the magnitude of the quotient. y must
// not be zero. If p reports cancellation, z holds a partial remainder and
// the error is returned.
func (z *Int) divmod(y *Int, p *poller) (*Int, error) {
	shift := maxInt(z.sig-y.sig, 0)
	m := y.Clone()
	m.neg = false
	m.Lsh(shift)
	step := New(1).Lsh(shift)

	q := Zero()
	for !step.IsZero() {
		if err := p.poll(); err != nil {
			return nil, err
		}
		if !z.IsSmaller(m) {
			z.minus(m)
			q.plus(step)
		}
		m.Rsh(1)
		step.Rsh(1)
	}
	return q, nil
}

// Quo sets z to the quotient z / y truncated toward zero and returns z. If y
// is zero, z is left unchanged and ErrDivideByZero is returned.
func (z *Int) Quo(y *Int) (*Int, error) {
	if y.IsZero() {
		return z, ErrDivideByZero
	}
	neg := z.neg != y.neg
	q, _ := z.divmod(y, nil)
	z.Set(q)
	z.neg = neg
	z.clearNegativeZero()
	return z, nil
}

// Rem sets z to the remainder of z / y and returns z. The remainder carries
// the sign of the dividend. If y is zero, z is left unchanged and
// ErrDivideByZero is returned.
func (z *Int) Rem(y *Int) (*Int, error) {
	if y.IsZero() {
		return z, ErrDivideByZero
	}
	if y == z {
		y = y.Clone()
	}
	z.divmod(y, nil)
	z.clearNegativeZero()
	return z, nil
}

// QuoRem sets z to the truncated quotient z / y and returns the remainder as
// a new Int. If y is zero, z is left unchanged and ErrDivideByZero is
// returned.
func (z *Int) QuoRem(y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, ErrDivideByZero
	}
	neg := z.neg != y.neg
	r := z.Clone()
	q, _ := r.divmod(y, nil)
	r.clearNegativeZero()
	z.Set(q)
	z.neg = neg
	z.clearNegativeZero()
	return r, nil
}
