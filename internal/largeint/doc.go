// Package largeint implements an arbitrary-precision signed integer stored as
// a growable vector of bits (least significant bit first) plus a separate sign
// flag.
//
// The representation is sign-magnitude, not two's complement. Arithmetic
// follows the usual integer semantics (division truncates toward zero and the
// remainder takes the sign of the dividend), while the bitwise operators And,
// Or and Xor and the shifts act on the magnitude only and leave the sign flag
// alone. For example -5 >> 1 is -2, and -6 & 3 is -2.
//
// # Mutation
//
// Methods named after an operator (Add, Sub, Mul, Quo, Rem, Lsh, Rsh, And, Or,
// Xor, Inc, Dec) update the receiver in place and return it so calls can be
// chained:
//
//	x := largeint.New(5)
//	x.Add(largeint.New(3)).Lsh(2) // x == 32
//
// The package-level functions (Sum, Difference, Product, Quotient, ...) leave
// their operands untouched and return a fresh value.
//
// # Failure
//
// Division and remainder by zero return ErrDivideByZero and leave the receiver
// unchanged. Narrowing conversions (Int64, Int32, ...) never fail: when the
// value does not fit, a warning is written to the package logger (see
// SetLogger) and the wrapped value is returned.
//
// An Int is not safe for concurrent mutation. Distinct values never share
// storage, so each goroutine may freely own its own instances.
package largeint
