package tui

import tea "github.com/charmbracelet/bubbletea"

// Init starts the spinner and both channel listeners.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(
		b.spinnerC.Tick,
		b.waitForStatus(),
		b.waitForDone(),
	)
}
