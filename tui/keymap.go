package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	state state

	quit      key.Binding
	forceQuit key.Binding
	stop      key.Binding
	showHelp  key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		state:     runningState,
		quit:      key.NewBinding(key.WithKeys("q", "esc", "enter"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
		stop:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop session")),
		showHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// bindings lists what is active in the current state, most useful first.
func (k *keymap) bindings() []key.Binding {
	if k.state == doneState {
		return []key.Binding{k.quit, k.forceQuit}
	}
	return []key.Binding{k.stop, k.showHelp, k.forceQuit}
}

func (k *keymap) ShortHelp() []key.Binding {
	all := k.bindings()
	return all[:len(all)-1]
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.bindings()}
}
