// Package style composes lipgloss styles into plain string renderers.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/playcheck-cli/playcheck/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders strings in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Truncate renders strings in a block max cells wide.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).Render(s) }
}

// Faint renders s dimmed.
func Faint(s string) string {
	return New().Faint(true).Render(s)
}

// Bold renders s in bold.
func Bold(s string) string {
	return New().Bold(true).Render(s)
}

// Title renders a padded banner.
func Title(s string) string {
	return banner(color.New("62")).Render(s)
}

// ErrorTitle renders a padded banner in the error color.
func ErrorTitle(s string) string {
	return banner(color.Red).Render(s)
}

// Verdict renders s in the color of a passed or failed session.
func Verdict(passed bool) func(string) string {
	return Fg(color.Verdict(passed))
}

func banner(bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(color.New("230")).Background(bg).Padding(0, 1)
}
