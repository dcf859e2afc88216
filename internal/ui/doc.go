// Package ui provides theme and color support for the application's user interface.
// It defines color schemes, ANSI escape accessors and a lipgloss-rendered
// banner so the REPL, the verification report and the one-shot evaluator share
// one look. Colours are disabled for --no-color, NO_COLOR, and non-terminal
// output.
package ui
