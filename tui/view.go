package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case runningState:
		return b.viewRunning()
	case doneState:
		return b.viewDone()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) header() []string {
	return []string{
		style.Title(b.options.Tag),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Film), style.Fg(color.Purple)(b.options.Media))),
	}
}

func (b *statefulBubble) viewRunning() string {
	st := b.status.Monitor

	playback := icon.Get(icon.Pause) + " " + style.Fg(color.PlayerState(st.State.String()))(st.State.String())
	if st.Playing {
		playback = icon.Get(icon.Play) + " " + style.Fg(color.Green)("playing")
	}

	phase := b.status.Phase.String()
	if b.stopping {
		phase = "stopping"
	}

	lines := append(b.header(),
		"",
		b.spinnerC.View()+" "+phase+"  "+playback,
		fmt.Sprintf("%s %s played", icon.Get(icon.Clock), st.PlayingTime.Round(100*time.Millisecond)),
		style.Faint("video "+st.Video.String()),
		style.Faint("audio "+st.Audio.String()),
	)

	if b.options.Timeout > 0 {
		lines = append(lines, "", b.progressC.View())
	}

	return b.renderLines(lines)
}

func (b *statefulBubble) viewDone() string {
	st := b.status.Monitor
	lines := b.header()

	if b.verdict == nil {
		lines = append(lines,
			"",
			icon.Get(icon.Success)+" "+style.Fg(color.Green)("PASS"),
			fmt.Sprintf("%s %s played, finished: %s", icon.Get(icon.Clock), st.PlayingTime, st.Reason),
		)
		return b.renderLines(lines)
	}

	width := b.width - 4
	if width <= 0 {
		width = 80
	}
	lines = append(lines,
		"",
		style.ErrorTitle("FAIL"),
		"",
		icon.Get(icon.Fail)+" "+wordwrap.String(b.verdict.Error(), width),
	)
	return b.renderLines(lines)
}

func (b *statefulBubble) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if b.height > h+4 {
		l += strings.Repeat("\n", b.height-h-4)
	}
	l += "\n" + b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}
