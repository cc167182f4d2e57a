// Package monitor consumes player notifications, drives the playing-time accumulator
// and decides when a playback session is finished.
package monitor

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/codec"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/playtime"
)

// Reason tells why a session finished.
type Reason int

const (
	// ReasonNone means the session has not finished.
	ReasonNone Reason = iota
	// ReasonEnded means playback reached the end of the media.
	ReasonEnded
	// ReasonReset means the player returned to IDLE after having been prepared,
	// through a reset, an error or a release before the natural end.
	ReasonReset
)

func (r Reason) String() string {
	switch r {
	case ReasonEnded:
		return "ended"
	case ReasonReset:
		return "reset"
	default:
		return "none"
	}
}

// Status is a snapshot of the monitor for observers.
type Status struct {
	State         player.State
	PlayWhenReady bool
	Playing       bool
	PlayingTime   time.Duration
	Finished      bool
	Reason        Reason
	Err           error
	Audio         codec.Counters
	Video         codec.Counters
}

// Monitor is the player listener of a session.
// It is not safe for concurrent use: every method runs on the session control queue.
type Monitor struct {
	clock  clockwork.Clock
	logger log.Tagged
	acc    *playtime.Accumulator

	audio codec.Aggregator
	video codec.Aggregator

	state          player.State
	playWhenReady  bool
	prepared       bool
	finished       bool
	reason         Reason
	playing        bool
	lastTransition time.Time
	err            error
	onError        func(err error)
}

// New returns a monitor reading timestamps from clock and logging with logger.
func New(clock clockwork.Clock, logger log.Tagged) *Monitor {
	return &Monitor{
		clock:   clock,
		logger:  logger,
		acc:     playtime.New(logger),
		state:   player.StateIdle,
		onError: func(error) {},
	}
}

// OnError sets the hook invoked with the first player error.
func (m *Monitor) OnError(hook func(err error)) {
	if hook == nil {
		hook = func(error) {}
	}
	m.onError = hook
}

// Handle is the single entry point for player notifications.
func (m *Monitor) Handle(ev player.Event) {
	switch ev := ev.(type) {
	case player.StateChanged:
		m.stateChanged(ev.PlayWhenReady, ev.State)
	case player.Error:
		m.failed(ev.Err)
	case player.TrackEnabled:
		m.logger.Debugf("%s enabled", ev.Track)
	case player.TrackDisabled:
		m.logger.Debugf("%s disabled: %s", ev.Track, ev.Counters)
		m.aggregator(ev.Track).Add(ev.Counters)
	case player.DecoderInitialized:
		m.logger.Debugf("%s decoder initialized %s (%s)", ev.Track, ev.Name, ev.InitDuration)
	case player.FormatChanged:
		m.logger.Debugf("%s format changed %s", ev.Track, ev.FormatID)
	case player.DroppedFrames:
		m.logger.Debugf("dropped frames %d in %s", ev.Count, ev.Elapsed)
	case player.AudioUnderrun:
		m.logger.Errorf("audio track underrun (%d, %dms, %dms)", ev.BufferSize, ev.BufferSizeMs, ev.ElapsedSinceLastFeedMs)
	}
}

func (m *Monitor) stateChanged(playWhenReady bool, state player.State) {
	now := m.clock.Now()
	m.logger.Debugf("state changed: playWhenReady=%t state=%s", playWhenReady, state)

	m.lastTransition = now
	m.state = state
	m.playWhenReady = playWhenReady

	m.prepared = m.prepared || state != player.StateIdle
	if !m.finished {
		switch {
		case state == player.StateEnded:
			m.finished, m.reason = true, ReasonEnded
		case state == player.StateIdle && m.prepared:
			m.finished, m.reason = true, ReasonReset
		}
	}

	playing := playWhenReady && state == player.StateReady
	if m.err == nil {
		switch {
		case playing && !m.playing:
			m.acc.Start(now)
		case !playing && m.playing:
			m.acc.End(now)
		}
	}
	m.playing = playing
}

func (m *Monitor) failed(err error) {
	now := m.clock.Now()
	m.prepared = true

	if m.err != nil {
		m.logger.Warnf("ignoring player error after the first: %v", err)
		return
	}

	m.logger.Errorf("player error: %v", err)
	m.err = err
	m.lastTransition = now
	if m.acc.Open() {
		m.acc.End(now)
	}
	m.onError(err)
}

func (m *Monitor) aggregator(track player.TrackType) *codec.Aggregator {
	if track == player.TrackAudio {
		return &m.audio
	}
	return &m.video
}

// Seal closes a still open playing interval at the last transition timestamp.
// Time between the last notification and teardown is never counted.
func (m *Monitor) Seal() {
	if m.acc.Open() {
		m.acc.End(m.lastTransition)
	}
}

// Finished reports whether the session reached completion.
func (m *Monitor) Finished() bool {
	return m.finished
}

// Reason returns why the session finished.
func (m *Monitor) Reason() Reason {
	return m.reason
}

// Err returns the first player error, if any.
func (m *Monitor) Err() error {
	return m.err
}

// PlayingTime returns the time accumulated over closed playing intervals.
func (m *Monitor) PlayingTime() time.Duration {
	return m.acc.Total()
}

// Anomalies returns the number of clock anomalies seen by the accumulator.
func (m *Monitor) Anomalies() int {
	return m.acc.Anomalies()
}

// Counters returns the merged counters of a track.
func (m *Monitor) Counters(track player.TrackType) codec.Counters {
	return m.aggregator(track).Snapshot()
}

// Status returns a snapshot for observers. Its playing time includes the open interval.
func (m *Monitor) Status() Status {
	total := m.acc.Total()
	if start, open := m.acc.OpenedAt(); open {
		total += max(m.clock.Since(start), 0)
	}

	return Status{
		State:         m.state,
		PlayWhenReady: m.playWhenReady,
		Playing:       m.playing,
		PlayingTime:   total,
		Finished:      m.finished,
		Reason:        m.reason,
		Err:           m.err,
		Audio:         m.audio.Snapshot(),
		Video:         m.video.Snapshot(),
	}
}
