package player

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/codec"
)

// trackState is the live view of one renderer.
type trackState struct {
	enabled   bool
	decoder   string
	format    string
	counters  codec.Counters
	dropRun   int
	rendered  int64
	dropped   int64
	skipped   int64
	lastDrops time.Time
}

// stateTracker turns mpv property changes and events into player events.
// It holds no connection, so it can be driven directly in tests.
type stateTracker struct {
	clock clockwork.Clock

	playWhenReady bool
	state         State

	sourceSet bool
	loaded    bool
	idle      bool
	eof       bool
	seeking   bool
	caching   bool
	cacheMs   int64
	lastFeed  time.Time
	failed    bool

	tracks map[TrackType]*trackState
}

func newStateTracker(clock clockwork.Clock) *stateTracker {
	return &stateTracker{
		clock: clock,
		state: StateIdle,
		tracks: map[TrackType]*trackState{
			TrackAudio: {},
			TrackVideo: {},
		},
	}
}

// derive computes the playback state from the observed flags.
func (t *stateTracker) derive() State {
	switch {
	case t.eof:
		return StateEnded
	case !t.sourceSet || t.idle && !t.loaded:
		return StateIdle
	case !t.loaded || t.seeking || t.caching:
		return StateBuffering
	default:
		return StateReady
	}
}

// settle emits StateChanged when play-when-ready or the derived state moved.
func (t *stateTracker) settle(playWhenReady bool, events []Event) []Event {
	state := t.derive()
	if state == t.state && playWhenReady == t.playWhenReady {
		return events
	}
	t.state = state
	t.playWhenReady = playWhenReady
	return append(events, StateChanged{PlayWhenReady: playWhenReady, State: state})
}

func (t *stateTracker) setSource() []Event {
	t.sourceSet = true
	t.loaded = false
	t.eof = false
	t.idle = false
	return t.settle(t.playWhenReady, nil)
}

func (t *stateTracker) setPlayWhenReady(playWhenReady bool) []Event {
	return t.settle(playWhenReady, nil)
}

func (t *stateTracker) stop() []Event {
	t.sourceSet = false
	t.loaded = false
	t.eof = false
	return t.settle(t.playWhenReady, nil)
}

// property applies an observed property change.
func (t *stateTracker) property(name string, data interface{}) []Event {
	var events []Event
	playWhenReady := t.playWhenReady

	switch name {
	case "pause":
		if paused, ok := data.(bool); ok {
			playWhenReady = !paused
		}
	case "idle-active":
		t.idle = asBool(data)
	case "eof-reached":
		t.eof = asBool(data)
	case "seeking":
		t.seeking = asBool(data)
	case "paused-for-cache":
		caching := asBool(data)
		if caching && !t.caching && t.tracks[TrackAudio].enabled {
			events = append(events, AudioUnderrun{
				BufferSizeMs:           t.cacheMs,
				ElapsedSinceLastFeedMs: t.clock.Since(t.lastFeed).Milliseconds(),
			})
		}
		if !caching {
			t.lastFeed = t.clock.Now()
		}
		t.caching = caching
	case "demuxer-cache-duration":
		if secs, ok := data.(float64); ok {
			t.cacheMs = int64(secs * 1000)
			t.lastFeed = t.clock.Now()
		}
	case "vid":
		events = t.trackSelected(TrackVideo, data, events)
	case "aid":
		events = t.trackSelected(TrackAudio, data, events)
	case "video-codec":
		events = t.decoder(TrackVideo, data, events)
	case "audio-codec-name":
		events = t.decoder(TrackAudio, data, events)
	case "video-params/pixelformat":
		events = t.formatChanged(TrackVideo, data, events)
	case "audio-params/format":
		events = t.formatChanged(TrackAudio, data, events)
	case "estimated-frame-number":
		if n, ok := data.(float64); ok {
			vt := t.tracks[TrackVideo]
			if delta := int64(n) - vt.rendered; delta > 0 {
				vt.counters.RenderedOutputBufferCount += int(delta)
				vt.counters.InputBufferCount += int(delta)
				vt.dropRun = 0
			}
			vt.rendered = int64(n)
		}
	case "frame-drop-count":
		events = t.drops(data, false, events)
	case "decoder-frame-drop-count":
		events = t.drops(data, true, events)
	}

	return t.settle(playWhenReady, events)
}

// event applies an mpv event such as file-loaded or end-file.
func (t *stateTracker) event(name string, payload map[string]interface{}) []Event {
	var events []Event

	switch name {
	case "file-loaded":
		t.loaded = true
		t.idle = false
		t.eof = false
	case "playback-restart":
		t.seeking = false
	case "end-file":
		reason, _ := payload["reason"].(string)
		switch reason {
		case "eof":
			t.eof = true
		case "error":
			if !t.failed {
				t.failed = true
				cause, _ := payload["file_error"].(string)
				events = append(events, Error{Err: fmt.Errorf("mpv: playback failed: %s", cause)})
			}
			// A failed player drops its source and falls back to IDLE.
			t.sourceSet = false
			t.loaded = false
		default:
			t.loaded = false
		}
	}

	return t.settle(t.playWhenReady, events)
}

func (t *stateTracker) trackSelected(track TrackType, data interface{}, events []Event) []Event {
	ts := t.tracks[track]
	enabled := data != nil && data != false && data != "no"
	if enabled == ts.enabled {
		return events
	}

	ts.enabled = enabled
	if enabled {
		return append(events, TrackEnabled{Track: track})
	}
	return t.disable(track, events)
}

// disable hands the live counters of track over in a TrackDisabled event and resets them.
func (t *stateTracker) disable(track TrackType, events []Event) []Event {
	ts := t.tracks[track]
	ts.enabled = false
	if ts.decoder != "" {
		ts.counters.DecoderReleaseCount++
		ts.decoder = ""
	}

	snapshot := ts.counters
	ts.counters = codec.Counters{}
	ts.dropRun = 0
	return append(events, TrackDisabled{Track: track, Counters: snapshot})
}

// release disables every enabled track.
func (t *stateTracker) release() []Event {
	var events []Event
	for _, track := range []TrackType{TrackAudio, TrackVideo} {
		if t.tracks[track].enabled {
			events = t.disable(track, events)
		}
	}
	return events
}

func (t *stateTracker) decoder(track TrackType, data interface{}, events []Event) []Event {
	name, _ := data.(string)
	ts := t.tracks[track]
	if name == "" || name == ts.decoder {
		return events
	}

	if ts.decoder != "" {
		ts.counters.DecoderReleaseCount++
	}
	ts.decoder = name
	ts.counters.DecoderInitCount++
	return append(events, DecoderInitialized{Track: track, Name: name})
}

func (t *stateTracker) formatChanged(track TrackType, data interface{}, events []Event) []Event {
	format, _ := data.(string)
	ts := t.tracks[track]
	if format == "" || format == ts.format {
		return events
	}
	ts.format = format
	return append(events, FormatChanged{Track: track, FormatID: format})
}

func (t *stateTracker) drops(data interface{}, decoder bool, events []Event) []Event {
	n, ok := data.(float64)
	if !ok {
		return events
	}

	vt := t.tracks[TrackVideo]
	seen := &vt.dropped
	if decoder {
		seen = &vt.skipped
	}

	delta := int(int64(n) - *seen)
	*seen = int64(n)
	if delta <= 0 {
		return events
	}

	vt.counters.InputBufferCount += delta
	if decoder {
		vt.counters.SkippedOutputBufferCount += delta
		return events
	}

	vt.counters.DroppedOutputBufferCount += delta
	vt.dropRun += delta
	vt.counters.MaxConsecutiveDroppedOutputBufferCount = max(vt.counters.MaxConsecutiveDroppedOutputBufferCount, vt.dropRun)

	now := t.clock.Now()
	var elapsed time.Duration
	if !vt.lastDrops.IsZero() {
		elapsed = now.Sub(vt.lastDrops)
	}
	vt.lastDrops = now
	return append(events, DroppedFrames{Count: delta, Elapsed: elapsed})
}

func asBool(data interface{}) bool {
	b, _ := data.(bool)
	return b
}
