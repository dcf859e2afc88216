package largeint

// Equal reports whether x and y hold the same value.
func (x *Int) Equal(y *Int) bool {
	if x.sig != y.sig || x.neg != y.neg {
		return false
	}
	for i := x.sig; i >= 0; i-- {
		if x.bit(i) != y.bit(i) {
			return false
		}
	}
	return true
}

// NotEqual reports whether x != y.
func (x *Int) NotEqual(y *Int) bool { return !x.Equal(y) }

// IsSmaller reports whether |x| < |y|.
func (x *Int) IsSmaller(y *Int) bool {
	if x.sig != y.sig {
		return x.sig < y.sig
	}
	for i := x.sig; i >= 0; i-- {
		if a, b := x.bit(i), y.bit(i); a != b {
			return a < b
		}
	}
	return false
}

// IsGreater reports whether |x| > |y|.
func (x *Int) IsGreater(y *Int) bool {
	if x.sig != y.sig {
		return x.sig > y.sig
	}
	for i := x.sig; i >= 0; i-- {
		if a, b := x.bit(i), y.bit(i); a != b {
			return a > b
		}
	}
	return false
}

// Less reports whether x < y.
func (x *Int) Less(y *Int) bool {
	if x.neg != y.neg {
		return x.neg
	}
	if x.neg {
		return x.IsGreater(y)
	}
	return x.IsSmaller(y)
}

// Greater reports whether x > y.
func (x *Int) Greater(y *Int) bool {
	if x.neg != y.neg {
		return y.neg
	}
	if x.neg {
		return x.IsSmaller(y)
	}
	return x.IsGreater(y)
}

// LessEqual reports whether x <= y.
func (x *Int) LessEqual(y *Int) bool { return !x.Greater(y) }

// GreaterEqual reports whether x >= y.
func (x *Int) GreaterEqual(y *Int) bool { return !x.Less(y) }

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.Less(y):
		return -1
	case x.Equal(y):
		return 0
	default:
		return 1
	}
}
