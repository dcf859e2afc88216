package largeint

import "errors"

var (
	// ErrDivideByZero is returned by Quo, Rem, QuoRem and their package-level
	// counterparts when the divisor is zero.
	ErrDivideByZero = errors.New("largeint: division by zero")

	// ErrSyntax is returned when text cannot be parsed as a binary integer.
	ErrSyntax = errors.New("largeint: invalid binary integer syntax")

	errShiftOverflow = errors.New("largeint: shift count overflows int")
)
