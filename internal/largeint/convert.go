package largeint

import (
	"math"
	"os"
	"sync"

	"fortio.org/safecast"

	"github.com/agbru/largeint/internal/logging"
)

var (
	diagMu       sync.RWMutex
	diagLogger   logging.Logger = logging.NewLogger(os.Stderr, "largeint")
	overflowHook func(target string)
)

// SetLogger replaces the logger that receives narrowing-conversion warnings.
// A nil logger discards them.
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Nop{}
	}
	diagMu.Lock()
	diagLogger = l
	diagMu.Unlock()
}

// SetOverflowHook installs a callback invoked with the target type name each
// time a narrowing conversion overflows. Pass nil to remove it.
func SetOverflowHook(fn func(target string)) {
	diagMu.Lock()
	overflowHook = fn
	diagMu.Unlock()
}

func warnOverflow(target string, x *Int, err error) {
	diagMu.RLock()
	l, hook := diagLogger, overflowHook
	diagMu.RUnlock()

	fields := []logging.Field{
		logging.String("target", target),
		logging.Int("bits", x.BitLen()),
	}
	if err != nil {
		fields = append(fields, logging.Err(err))
	}
	l.Warn("largeint: value does not fit in target type", fields...)
	if hook != nil {
		hook(target)
	}
}

// fold rebuilds the low 64 bits of the magnitude, most significant bit
// first. wide reports whether higher bits were dropped.
func (x *Int) fold() (mag uint64, wide bool) {
	for i := x.sig; i >= 0; i-- {
		mag = mag<<1 | uint64(x.bit(i))
	}
	return mag, x.sig >= 64
}

// int64Value returns the (possibly wrapped) int64 value of x and whether it
// is exact.
func (x *Int) int64Value() (int64, bool) {
	mag, wide := x.fold()
	v := int64(mag)
	if x.neg {
		v = -v
	}
	fits := !wide && (mag <= math.MaxInt64 || (x.neg && mag == 1<<63))
	return v, fits
}

// Int64 returns x as an int64. If x does not fit, a warning is logged and the
// low 64 bits of the magnitude, with the sign applied, are returned.
func (x *Int) Int64() int64 {
	v, ok := x.int64Value()
	if !ok {
		warnOverflow("int64", x, nil)
	}
	return v
}

// Uint64 returns |x| as a uint64 when x is non-negative. A negative or wider
// value logs a warning and returns the low 64 bits of the magnitude.
func (x *Int) Uint64() uint64 {
	mag, wide := x.fold()
	if wide || x.neg {
		warnOverflow("uint64", x, nil)
	}
	return mag
}

// Int returns x as a native int, warning on overflow.
func (x *Int) Int() int { return narrow[int](x, "int") }

// Int32 returns x as an int32, warning on overflow.
func (x *Int) Int32() int32 { return narrow[int32](x, "int32") }

// Int16 returns x as an int16, warning on overflow.
func (x *Int) Int16() int16 { return narrow[int16](x, "int16") }

// Int8 returns x as an int8, warning on overflow.
func (x *Int) Int8() int8 { return narrow[int8](x, "int8") }

func narrow[T int | int32 | int16 | int8](x *Int, target string) T {
	v, exact := x.int64Value()
	out, err := safecast.Conv[T](v)
	if err != nil || !exact {
		warnOverflow(target, x, err)
		return T(v)
	}
	return out
}
