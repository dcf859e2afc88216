package ui

// The Color* accessors return the escape sequence of the active theme for
// each role. They return "" when colours are disabled, so callers can
// interpolate them unconditionally.

// ColorReset returns the code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error colour.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success colour.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning colour.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent colour.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the informational colour.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the primary accent colour.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary colour.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold attribute.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline attribute.
func ColorUnderline() string { return GetCurrentTheme().Underline }
