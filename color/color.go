// Package color names the colors of playcheck output.
package color

import "github.com/charmbracelet/lipgloss"

// New returns the lipgloss color for an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

var (
	Accent = New("#cba6f7")
	Text   = New("#cdd6f4")
	Subtle = New("#6c7086")
)

// Verdict returns the color of a passed or failed session.
func Verdict(passed bool) lipgloss.Color {
	if passed {
		return Green
	}
	return Red
}

// PlayerState returns the color of a player state name as printed by player.State.
func PlayerState(state string) lipgloss.Color {
	switch state {
	case "READY":
		return Green
	case "BUFFERING":
		return Yellow
	case "ENDED":
		return Blue
	default:
		return Subtle
	}
}
