// Package playertest provides a scripted player for exercising sessions without mpv.
package playertest

import (
	"fmt"
	"sync"
	"time"

	"github.com/playcheck-cli/playcheck/codec"
	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/source"
)

// Call records a method invocation on a Fake.
type Call struct {
	Method string
	Args   []interface{}
}

// Fake is a player whose state is driven by the test. Notifications are posted
// through the handler it was built with, so they run on the control queue.
type Fake struct {
	handler *dispatch.Handler
	meter   *source.BandwidthMeter

	mu            sync.Mutex
	listeners     []player.Listener
	calls         []Call
	playWhenReady bool
	state         player.State
	duration      time.Duration
	media         source.Media
	released      bool
	enabled       map[player.TrackType]bool
	live          map[player.TrackType]*codec.Counters

	// FailSetSource, when set, is returned by SetSource.
	FailSetSource error
}

// New returns a fake in IDLE with an unknown duration.
func New(h *dispatch.Handler) *Fake {
	return &Fake{
		handler:  h,
		meter:    source.NewBandwidthMeter(),
		state:    player.StateIdle,
		duration: player.DurationUnknown,
		enabled:  make(map[player.TrackType]bool),
		live: map[player.TrackType]*codec.Counters{
			player.TrackAudio: {},
			player.TrackVideo: {},
		},
	}
}

// Builder returns a player.Builder that hands out f after binding it to the handler.
// The surface and config it was called with are recorded as a call.
func Builder(f **Fake) player.Builder {
	return func(h *dispatch.Handler, surface player.Surface, cfg player.Config) (player.Player, error) {
		*f = New(h)
		(*f).record("New", surface, cfg)
		return *f, nil
	}
}

func (f *Fake) record(method string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Args: args})
}

// Calls returns the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Called reports whether method was invoked.
func (f *Fake) Called(method string) bool {
	for _, c := range f.Calls() {
		if c.Method == method {
			return true
		}
	}
	return false
}

// Emit posts events to the listeners on the control queue. Listeners are looked up
// when the events are delivered.
func (f *Fake) Emit(events ...player.Event) {
	f.handler.Post(func() {
		f.mu.Lock()
		listeners := append([]player.Listener(nil), f.listeners...)
		f.mu.Unlock()

		for _, ev := range events {
			for _, l := range listeners {
				l.Handle(ev)
			}
		}
	})
}

// SetState moves the fake to state and notifies listeners.
func (f *Fake) SetState(state player.State) {
	f.mu.Lock()
	f.state = state
	pwr := f.playWhenReady
	f.mu.Unlock()

	f.Emit(player.StateChanged{PlayWhenReady: pwr, State: state})
}

// Fail reports a fatal error and drops to IDLE, as a failed player does.
func (f *Fake) Fail(err error) {
	f.mu.Lock()
	f.state = player.StateIdle
	pwr := f.playWhenReady
	f.mu.Unlock()

	f.Emit(player.Error{Err: err}, player.StateChanged{PlayWhenReady: pwr, State: player.StateIdle})
}

// SetDuration sets the value Duration returns.
func (f *Fake) SetDuration(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duration = d
}

// Live returns the live counters of a track for the test to fill in.
func (f *Fake) Live(track player.TrackType) *codec.Counters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[track]
}

// Media returns the media passed to SetSource.
func (f *Fake) Media() source.Media {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.media
}

// Released reports whether Release was called.
func (f *Fake) Released() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

func (f *Fake) AddListener(l player.Listener) {
	f.record("AddListener")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, l)
}

func (f *Fake) SetSource(m source.Media) error {
	f.record("SetSource", m)
	if f.FailSetSource != nil {
		return f.FailSetSource
	}

	f.mu.Lock()
	f.media = m
	f.mu.Unlock()
	return nil
}

func (f *Fake) SetPlayWhenReady(playWhenReady bool) error {
	f.record("SetPlayWhenReady", playWhenReady)

	f.mu.Lock()
	changed := f.playWhenReady != playWhenReady
	f.playWhenReady = playWhenReady
	state := f.state
	f.mu.Unlock()

	if changed {
		f.Emit(player.StateChanged{PlayWhenReady: playWhenReady, State: state})
	}
	return nil
}

func (f *Fake) PlayWhenReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playWhenReady
}

func (f *Fake) State() player.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Fake) Duration() time.Duration {
	f.record("Duration")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *Fake) Seek(position time.Duration) error {
	f.record("Seek", position)
	return nil
}

func (f *Fake) Stop() error {
	f.record("Stop")
	f.SetState(player.StateIdle)
	return nil
}

// SetTrackEnabled notifies TrackEnabled or TrackDisabled, handing over the live counters
// on disable.
func (f *Fake) SetTrackEnabled(track player.TrackType, enabled bool) error {
	f.record("SetTrackEnabled", track, enabled)

	f.mu.Lock()
	if f.enabled[track] == enabled {
		f.mu.Unlock()
		return nil
	}
	f.enabled[track] = enabled
	var ev player.Event = player.TrackEnabled{Track: track}
	if !enabled {
		ev = player.TrackDisabled{Track: track, Counters: *f.live[track]}
		*f.live[track] = codec.Counters{}
	}
	f.mu.Unlock()

	f.Emit(ev)
	return nil
}

func (f *Fake) BandwidthMeter() *source.BandwidthMeter {
	return f.meter
}

// Release disables every enabled track and marks the fake released.
func (f *Fake) Release() error {
	f.record("Release")

	f.mu.Lock()
	if f.released {
		f.mu.Unlock()
		return fmt.Errorf("fake player released twice")
	}
	f.released = true
	var enabled []player.TrackType
	for _, t := range []player.TrackType{player.TrackAudio, player.TrackVideo} {
		if f.enabled[t] {
			enabled = append(enabled, t)
		}
	}
	f.mu.Unlock()

	for _, t := range enabled {
		_ = f.SetTrackEnabled(t, false)
	}
	return nil
}
