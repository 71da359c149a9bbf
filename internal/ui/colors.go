package ui

// Color accessors return the escape code of the active theme, or "" when
// colors are disabled.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Colorize wraps s in color and a reset. With colors disabled s is returned
// unchanged.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
