package ui

import (
	"os"
	"sort"
	"sync"
)

// ThemeEnvVar selects a theme by name when colours are enabled.
const ThemeEnvVar = "LARGEINT_THEME"

// Theme maps output roles to ANSI escape codes. Accent is a hex colour
// handed to lipgloss for the REPL banner frame; empty leaves it unstyled.
type Theme struct {
	Name      string
	Accent    string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

const (
	bold      = "\033[1m"
	underline = "\033[4m"
	reset     = "\033[0m"
)

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme is the default, tuned for dark backgrounds.
	DarkTheme = Theme{
		Name: "dark", Accent: "#00AFFF",
		Primary: ansi256("39"), Secondary: ansi256("245"),
		Success: ansi256("82"), Warning: ansi256("220"),
		Error: ansi256("196"), Info: ansi256("141"),
		Bold: bold, Underline: underline, Reset: reset,
	}

	// LightTheme uses darker shades for light backgrounds.
	LightTheme = Theme{
		Name: "light", Accent: "#005FD7",
		Primary: ansi256("27"), Secondary: ansi256("240"),
		Success: ansi256("28"), Warning: ansi256("130"),
		Error: ansi256("124"), Info: ansi256("54"),
		Bold: bold, Underline: underline, Reset: reset,
	}

	// OrangeTheme is an orange-accented dark theme.
	OrangeTheme = Theme{
		Name: "orange", Accent: "#FF8700",
		Primary: ansi256("208"), Secondary: ansi256("245"),
		Success: ansi256("82"), Warning: ansi256("214"),
		Error: ansi256("196"), Info: ansi256("69"),
		Bold: bold, Underline: underline, Reset: reset,
	}

	// NoColorTheme has every role empty.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		OrangeTheme.Name:  OrangeTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the registered theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name, falling back to DarkTheme for
// unknown names.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the startup theme. Colours are off when noColor is true
// or NO_COLOR is set (https://no-color.org/); otherwise LARGEINT_THEME
// names the theme, defaulting to dark.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnvVar))
}
