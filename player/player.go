// Package player defines the narrow contract a playback session consumes from a media
// player, together with an implementation driving mpv through its JSON-IPC interface.
package player

import (
	"time"

	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/source"
)

// DurationUnknown is returned by Player.Duration while the media duration is not known.
const DurationUnknown time.Duration = -1

// Player is a media player driven by a playback session.
// Every method is called from the session control queue, and players deliver their
// notifications to listeners on that same queue.
type Player interface {
	// AddListener registers l for every notification posted after the call.
	AddListener(l Listener)

	// SetSource prepares the given media for playback.
	SetSource(m source.Media) error

	// SetPlayWhenReady sets whether playback proceeds as soon as the player is ready.
	SetPlayWhenReady(playWhenReady bool) error

	// PlayWhenReady reports the current play-when-ready flag.
	PlayWhenReady() bool

	// State returns the current playback state.
	State() State

	// Duration returns the media duration, or DurationUnknown.
	Duration() time.Duration

	// Seek moves playback to position.
	Seek(position time.Duration) error

	// Stop stops playback and returns the player to IDLE.
	Stop() error

	// SetTrackEnabled enables or disables the renderer of a track type.
	SetTrackEnabled(track TrackType, enabled bool) error

	// BandwidthMeter returns the meter the player reports transfer rates to.
	BandwidthMeter() *source.BandwidthMeter

	// Release frees the player. Enabled tracks report TrackDisabled before release completes.
	Release() error
}

// Config is passed to the player construction hook of a session.
type Config struct {
	// StrictAudioTimestamps makes the player treat non-monotonic audio timestamps as
	// errors instead of correcting them.
	StrictAudioTimestamps bool

	// Executable is the player binary. Empty means "mpv".
	Executable string
}

// Surface is the render target the host provides for a session.
type Surface struct {
	// VideoOutput names the video output driver, e.g. "null" for headless runs.
	// Empty leaves the player default.
	VideoOutput string
}

// Builder constructs a player that posts its notifications through h.
type Builder func(h *dispatch.Handler, surface Surface, cfg Config) (Player, error)

// NewMPVBuilder returns a Builder producing mpv players.
func NewMPVBuilder() Builder {
	return func(h *dispatch.Handler, surface Surface, cfg Config) (Player, error) {
		return NewMPV(h, surface, cfg), nil
	}
}
