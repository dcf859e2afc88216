// Package format holds pure string formatting helpers shared by the CLI and
// the server: durations, byte counts, digit grouping and progress bars with
// time-remaining estimates.
package format
