// Package ui holds the terminal themes of the CLI: ANSI escape codes for
// inline text and lipgloss colors for boxed results. NO_COLOR and
// --no-color select a theme without any escape codes.
package ui
