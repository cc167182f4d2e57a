package schedule

import (
	"fmt"
	"time"

	"github.com/playcheck-cli/playcheck/player"
)

// Action is one step of an ActionSchedule.
type Action interface {
	Do(p player.Player, sel *player.TrackSelector) error
	String() string
}

// Seek moves playback to Position.
type Seek struct {
	Position time.Duration
}

func (a Seek) Do(p player.Player, _ *player.TrackSelector) error {
	return p.Seek(a.Position)
}

func (a Seek) String() string {
	return fmt.Sprintf("seek to %s", a.Position)
}

// Stop stops playback.
type Stop struct{}

func (Stop) Do(p player.Player, _ *player.TrackSelector) error {
	return p.Stop()
}

func (Stop) String() string {
	return "stop"
}

// SetPlayWhenReady pauses or resumes playback.
type SetPlayWhenReady struct {
	PlayWhenReady bool
}

func (a SetPlayWhenReady) Do(p player.Player, _ *player.TrackSelector) error {
	return p.SetPlayWhenReady(a.PlayWhenReady)
}

func (a SetPlayWhenReady) String() string {
	if a.PlayWhenReady {
		return "play"
	}
	return "pause"
}

// SetRendererDisabled toggles a renderer through the track selector.
type SetRendererDisabled struct {
	Track    player.TrackType
	Disabled bool
}

func (a SetRendererDisabled) Do(_ player.Player, sel *player.TrackSelector) error {
	if sel == nil {
		return fmt.Errorf("no track selector")
	}
	return sel.SetRendererDisabled(a.Track, a.Disabled)
}

func (a SetRendererDisabled) String() string {
	if a.Disabled {
		return fmt.Sprintf("disable %s", a.Track)
	}
	return fmt.Sprintf("enable %s", a.Track)
}
