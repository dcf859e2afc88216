// Package apperrors defines the typed errors shared by the calculator's
// front ends (configuration, parse, size, calculation and timeout errors)
// and the process exit codes they map to.
//
// CalculationError unwraps to its cause, so a failed division still matches
// largeint.ErrDivideByZero with errors.Is. Other causes are wrapped with
// fmt.Errorf and %w.
package apperrors
