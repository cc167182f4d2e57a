// Package tui renders the live status of a running playback session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playcheck-cli/playcheck/session"
)

// Options configures the status view.
type Options struct {
	// Tag names the session.
	Tag string

	// Media is the URL or path being played.
	Media string

	// Timeout is the time budget of the session, zero when unbounded.
	Timeout time.Duration

	// Statuses delivers session snapshots while the session runs.
	Statuses <-chan session.Status

	// Done delivers the verdict once the session is over.
	Done <-chan error

	// Cancel stops the session early.
	Cancel func()
}

// Run shows the status view until the session is over and the user quits.
func Run(options Options) error {
	_, err := tea.NewProgram(newBubble(options)).Run()
	return err
}
