// Package expr evaluates arithmetic expressions over largeint values.
//
// Literals are binary by default (101 is five); the 0b prefix is accepted
// and 0d introduces a decimal literal (0d42). Operators follow Go
// precedence:
//
//	5  *  /  %  <<  >>  &
//	4  +  -  |  ^
//	3  ==  !=  <  <=  >  >=
//
// Comparisons yield 1 or 0. Unary - negates and unary + is the identity.
// Bitwise operators and shifts act on magnitudes, so -110 & 11 is -10.
//
// A statement of the form name = expression binds a variable; the special
// variable _ holds the previous result. The functions abs, bit, even, len,
// neg, sign and trunc are built in.
//
// Errors are reported with the types from internal/errors: ParseError for
// malformed input, ValidationError for undefined variables, CalculationError
// for division by zero and SizeError when a value would exceed the bit limit
// set with WithMaxBits.
package expr
