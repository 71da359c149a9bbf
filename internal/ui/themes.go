package ui

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape codes used by the CLI output.
type Theme struct {
	Name      string
	Primary   string // variable names, prompts
	Secondary string // labels, byte lists
	Success   string
	Warning   string
	Error     string
	Info      string // hexadecimal values
	Bold      string
	Underline string
	Reset     string

	// Box colors the lipgloss frame drawn around results.
	Box BoxColors
}

// BoxColors holds the lipgloss colors of the result box.
type BoxColors struct {
	Border lipgloss.TerminalColor
	Title  lipgloss.TerminalColor
	Value  lipgloss.TerminalColor
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Box: BoxColors{
			Border: lipgloss.Color("#4488FF"),
			Title:  lipgloss.Color("#9ece6a"),
			Value:  lipgloss.Color("#E0E0E0"),
		},
	}

	// LightTheme uses darker colors for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Box: BoxColors{
			Border: lipgloss.Color("#1F4E96"),
			Title:  lipgloss.Color("#2E7D32"),
			Value:  lipgloss.Color("#202020"),
		},
	}

	// NoColorTheme disables all color output. It is selected by --no-color
	// or the NO_COLOR environment variable.
	NoColorTheme = Theme{
		Name: "none",
		Box: BoxColors{
			Border: lipgloss.NoColor{},
			Title:  lipgloss.NoColor{},
			Value:  lipgloss.NoColor{},
		},
	}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the names accepted by SetTheme, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name.
//
// Parameters:
//   - name: One of ThemeNames().
//
// Returns:
//   - error: An error naming the valid themes when name is unknown; the
//     active theme is left unchanged.
func SetTheme(name string) error {
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (valid: %v)", name, ThemeNames())
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme selects the startup theme. noColor or a set NO_COLOR variable
// (https://no-color.org/) force NoColorTheme; otherwise name is applied,
// falling back to DarkTheme when it is empty or unknown.
func InitTheme(name string, noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if err := SetTheme(name); err != nil {
		SetCurrentTheme(DarkTheme)
	}
}

// BoxStyle returns the lipgloss style used to frame results under the
// active theme.
func BoxStyle() lipgloss.Style {
	box := GetCurrentTheme().Box
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(box.Border).
		Foreground(box.Value).
		Padding(0, 1)
}

// TitleStyle returns the lipgloss style of the box title line.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(GetCurrentTheme().Box.Title)
}
