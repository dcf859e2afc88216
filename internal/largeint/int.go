package largeint

// BitIncrement is the allocation granularity of the backing bit vector.
const BitIncrement = 32

// nativeBits is the width of the native integer used by New and NewUint64.
const nativeBits = 64

// Int is an arbitrary-precision signed integer. The zero value is 0 and is
// ready to use.
type Int struct {
	// bits holds one 0/1 value per element, index 0 being the least
	// significant bit. len(bits)-1 is the highest addressable index.
	bits []uint8
	// sig is the index of the most significant bit of the value. Bits above
	// sig are logically zero whatever the backing slice holds.
	sig int
	// neg is the sign flag. It is never set for zero.
	neg bool
}

// Zero returns a new Int set to 0 with minimal storage.
func Zero() *Int {
	return &Int{bits: make([]uint8, BitIncrement)}
}

// New returns a new Int set to n.
func New(n int64) *Int {
	mag := uint64(n)
	if n < 0 {
		mag = -mag
	}
	z := NewUint64(mag)
	z.neg = n < 0
	return z
}

// NewInt returns a new Int set to the native int n.
func NewInt(n int) *Int {
	return New(int64(n))
}

// NewUint64 returns a new Int set to u.
func NewUint64(u uint64) *Int {
	z := &Int{bits: make([]uint8, nativeBits)}
	for i := 0; i < nativeBits; i++ {
		z.bits[i] = uint8(u & 1)
		u >>= 1
	}
	z.sig = nativeBits - 1
	z.contract()
	return z
}

// Clone returns a deep copy of x with the same allocated capacity.
func (x *Int) Clone() *Int {
	c := &Int{sig: x.sig, neg: x.neg}
	if len(x.bits) == 0 {
		return c
	}
	c.bits = make([]uint8, len(x.bits))
	copy(c.bits, x.bits[:x.sig+1])
	return c
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	if z == x {
		return z
	}
	z.sig = 0
	z.expand(x.sig)
	for i := 0; i <= x.sig; i++ {
		z.bits[i] = x.bit(i)
	}
	z.neg = x.neg
	return z
}

// SetInt64 sets z to n and returns z.
func (z *Int) SetInt64(n int64) *Int {
	return z.Set(New(n))
}

// expand makes bit index n addressable and raises the significant index to n,
// zeroing every bit between the old and the new significant index. It never
// lowers the significant index.
func (z *Int) expand(n int) {
	if n < z.sig {
		return
	}
	if n >= len(z.bits) {
		size := (n/BitIncrement + 1) * BitIncrement
		grown := make([]uint8, size)
		copy(grown, z.bits)
		z.bits = grown
	}
	for i := z.sig + 1; i <= n; i++ {
		z.bits[i] = 0
	}
	z.sig = n
}

// contract drops leading zero bits above the most significant set bit.
func (z *Int) contract() {
	for z.sig > 0 && z.bits[z.sig] == 0 {
		z.sig--
	}
}

// clearNegativeZero restores the invariant that zero carries no sign.
func (z *Int) clearNegativeZero() {
	if z.IsZero() {
		z.neg = false
	}
}

// bit returns bit i of the magnitude, treating anything outside the
// significant range as zero.
func (x *Int) bit(i int) uint8 {
	if i < 0 || i > x.sig || i >= len(x.bits) {
		return 0
	}
	return x.bits[i]
}

// IsEven reports whether x is even.
func (x *Int) IsEven() bool { return x.bit(0) == 0 }

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool { return x.bit(0) == 1 }

// BitLen returns the length of the magnitude of x in bits. Zero has length 1.
func (x *Int) BitLen() int { return x.sig + 1 }

// Bit returns the bit of the magnitude at position pos. Positions outside the
// significant range are zero.
func (x *Int) Bit(pos int) uint8 { return x.bit(pos) }

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.sig == 0 && x.bit(0) == 0 }

// Negative reports whether x is strictly negative.
func (x *Int) Negative() bool { return x.neg }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.IsZero():
		return 0
	default:
		return 1
	}
}

// Truncate keeps only the lowest n bits of the magnitude. For n < 1 the value
// becomes zero.
func (z *Int) Truncate(n int) *Int {
	if n < 1 {
		z.sig = 0
		if len(z.bits) > 0 {
			z.bits[0] = 0
		}
		z.neg = false
		return z
	}
	if z.sig > n-1 {
		z.sig = n - 1
		z.contract()
	}
	z.clearNegativeZero()
	return z
}

// Complement flips the sign of z. Zero is left unchanged.
func (z *Int) Complement() *Int {
	if !z.IsZero() {
		z.neg = !z.neg
	}
	return z
}

// Abs sets z to |z| and returns z.
func (z *Int) Abs() *Int {
	z.neg = false
	return z
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
