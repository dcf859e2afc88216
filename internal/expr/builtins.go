package expr

import (
	"github.com/agbru/largeint/internal/largeint"
)

type builtin struct {
	arity int
	fn    func(args []*largeint.Int) *largeint.Int
}

// builtins are the functions callable from expressions. Argument values are
// owned by the callee and may be modified.
var builtins = map[string]builtin{
	// trunc(x, n) keeps the n low-order bits of |x|.
	"trunc": {2, func(args []*largeint.Int) *largeint.Int {
		return args[0].Truncate(args[1].Int())
	}},
	// len(x) is the length of x in bits.
	"len": {1, func(args []*largeint.Int) *largeint.Int {
		return largeint.NewInt(args[0].BitLen())
	}},
	// bit(x, i) is bit i of |x|.
	"bit": {2, func(args []*largeint.Int) *largeint.Int {
		return largeint.NewInt(int(args[0].Bit(args[1].Int())))
	}},
	"abs": {1, func(args []*largeint.Int) *largeint.Int {
		return args[0].Abs()
	}},
	"neg": {1, func(args []*largeint.Int) *largeint.Int {
		return args[0].Complement()
	}},
	// sign(x) is -1, 0 or 1.
	"sign": {1, func(args []*largeint.Int) *largeint.Int {
		return largeint.NewInt(args[0].Sign())
	}},
	// even(x) is 1 when x is even.
	"even": {1, func(args []*largeint.Int) *largeint.Int {
		return boolValue(args[0].IsEven())
	}},
}

// Builtins returns the names of the callable functions, for completion and
// help output.
func Builtins() []string {
	return []string{"abs", "bit", "even", "len", "neg", "sign", "trunc"}
}

func boolValue(b bool) *largeint.Int {
	if b {
		return largeint.New(1)
	}
	return largeint.Zero()
}
