package tui

// state is the phase of the view, not of the session.
type state int

const (
	// runningState lasts until the host returns a verdict.
	runningState state = iota
	doneState
)
