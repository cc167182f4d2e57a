package player

import (
	"time"

	"github.com/playcheck-cli/playcheck/codec"
)

// Event is a notification from a player. The set of events is closed.
type Event interface {
	event()
}

// Listener receives player notifications on the session control queue.
type Listener interface {
	Handle(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) Handle(ev Event) { f(ev) }

// StateChanged reports a change of play-when-ready or playback state.
type StateChanged struct {
	PlayWhenReady bool
	State         State
}

// Error reports a fatal player error. The player does not recover from it.
type Error struct {
	Err error
}

// TrackEnabled reports that a renderer was enabled.
type TrackEnabled struct {
	Track TrackType
}

// TrackDisabled reports that a renderer was disabled. Counters holds the decoder
// activity of the period that just ended; the receiver owns it.
type TrackDisabled struct {
	Track    TrackType
	Counters codec.Counters
}

// DecoderInitialized reports that a decoder was created for a track.
type DecoderInitialized struct {
	Track        TrackType
	Name         string
	InitDuration time.Duration
}

// FormatChanged reports a new input format on a track.
type FormatChanged struct {
	Track    TrackType
	FormatID string
}

// DroppedFrames reports video frames dropped over a period.
type DroppedFrames struct {
	Count   int
	Elapsed time.Duration
}

// AudioUnderrun reports that the audio output ran out of data.
type AudioUnderrun struct {
	BufferSize             int
	BufferSizeMs           int64
	ElapsedSinceLastFeedMs int64
}

func (StateChanged) event()       {}
func (Error) event()              {}
func (TrackEnabled) event()       {}
func (TrackDisabled) event()      {}
func (DecoderInitialized) event() {}
func (FormatChanged) event()      {}
func (DroppedFrames) event()      {}
func (AudioUnderrun) event()      {}
