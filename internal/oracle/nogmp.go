//go:build !gmp

package oracle

// GMPAvailable reports whether the binary was built with the gmp tag.
const GMPAvailable = false

// NewReference returns the reference implementation with the given name.
// Only math/big is available without the gmp build tag.
func NewReference(name string) (Reference, bool) {
	switch name {
	case "", "big", "math/big":
		return BigReference{}, true
	}
	return nil, false
}
