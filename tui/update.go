package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playcheck-cli/playcheck/session"
)

type statusMsg session.Status

type doneMsg struct {
	err error
}

func (b *statefulBubble) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-b.options.Statuses
		if !ok {
			return nil
		}
		return statusMsg(st)
	}
}

func (b *statefulBubble) waitForDone() tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-b.options.Done}
	}
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.helpC.Width = msg.Width
		b.progressC.Width = max(msg.Width-4, 10)
		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	case statusMsg:
		b.status = session.Status(msg)
		b.elapsed = time.Since(b.started)
		return b, tea.Batch(b.waitForStatus(), b.progressC.SetPercent(b.budgetUsed()))
	case doneMsg:
		b.verdict = msg.err
		b.setState(doneState)
		return b, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		if b.state == runningState {
			b.cancel()
		}
		return b, tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case b.state == runningState && key.Matches(msg, b.keymap.stop):
		b.cancel()
	case b.state == doneState && key.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	}

	return b, nil
}

func (b *statefulBubble) cancel() {
	if !b.stopping && b.options.Cancel != nil {
		b.stopping = true
		b.options.Cancel()
	}
}
