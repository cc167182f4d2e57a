package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/session"
	"github.com/playcheck-cli/playcheck/style"
)

// statefulBubble is the bubbletea model of the status view.
type statefulBubble struct {
	state   state
	options Options
	keymap  *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	status   session.Status
	verdict  error
	started  time.Time
	elapsed  time.Duration
	stopping bool

	width, height int
}

func newBubble(options Options) *statefulBubble {
	b := &statefulBubble{
		state:   runningState,
		options: options,
		keymap:  newKeymap(),
		started: time.Now(),

		spinnerC:  spinner.New(),
		progressC: progress.New(progress.WithDefaultGradient()),
		helpC:     help.New(),
	}

	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = style.New().Foreground(color.Accent)

	return b
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.state = s
}

// budgetUsed returns how much of the time budget has elapsed, in [0, 1].
func (b *statefulBubble) budgetUsed() float64 {
	if b.options.Timeout <= 0 {
		return 0
	}
	return min(float64(b.elapsed)/float64(b.options.Timeout), 1)
}
