// Package session implements a hosted playback test: it builds and drives a player,
// accumulates what the player reports and checks the outcome when playback finishes.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/host"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/monitor"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/report"
	"github.com/playcheck-cli/playcheck/schedule"
	"github.com/playcheck-cli/playcheck/source"
)

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseStopping
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NOT_STARTED"
	case PhaseRunning:
		return "RUNNING"
	case PhaseStopping:
		return "STOPPING"
	case PhaseDone:
		return "DONE"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Status is a snapshot of a session for observers.
type Status struct {
	Tag     string
	Phase   Phase
	Monitor monitor.Status
}

// Session is a hosted playback test. Apart from SetSchedule, every method must run on
// the control queue of the host.
type Session struct {
	id                    uuid.UUID
	tag                   string
	fullPlaybackNoSeeking bool
	buildSource           SourceBuilder
	opts                  options
	logger                log.Tagged

	coordinator *schedule.Coordinator

	phase          Phase
	clock          clockwork.Clock
	monitor        *monitor.Monitor
	selector       *player.TrackSelector
	player         player.Player
	media          source.Media
	sourceDuration time.Duration
	startedAt      time.Time
	finishedAt     time.Time
	verified       bool
	verdict        error
}

// New returns a session labelled tag. When fullPlaybackNoSeeking is set, the measured
// playing time must match the media duration within constant.MaxPlayingTimeDiscrepancy.
func New(tag string, fullPlaybackNoSeeking bool, buildSource SourceBuilder, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Session{
		id:                    uuid.New(),
		tag:                   tag,
		fullPlaybackNoSeeking: fullPlaybackNoSeeking,
		buildSource:           buildSource,
		opts:                  o,
		logger:                log.Tag(tag),
		coordinator:           schedule.NewCoordinator(),
		sourceDuration:        player.DurationUnknown,
	}
}

// Tag returns the session tag.
func (s *Session) Tag() string {
	return s.tag
}

// SetSchedule sets the actions to run during the session. It may be called before or
// after start; a schedule set after start replaces the one running.
func (s *Session) SetSchedule(sch schedule.Schedule) {
	s.coordinator.Set(sch)
}

// OnStart builds the player and media source, attaches the monitor and starts playback.
func (s *Session) OnStart(h host.Host, surface player.Surface) error {
	if s.phase != PhaseNotStarted {
		return fmt.Errorf("%s: session already started", s.tag)
	}

	s.clock = s.opts.clock
	if s.clock == nil {
		s.clock = h.Queue().Clock()
	}
	s.startedAt = s.clock.Now()

	s.monitor = monitor.New(s.clock, s.logger)
	s.monitor.OnError(s.opts.onError)
	s.selector = player.NewTrackSelector(s.opts.policy)

	p, err := s.opts.buildPlayer(h.Queue().NewHandler(), surface, s.opts.playerConfig)
	if err != nil {
		s.phase, s.verified = PhaseDone, true
		s.verdict = fmt.Errorf("build player: %w", err)
		return s.verdict
	}
	s.player = p

	if err := s.start(h); err != nil {
		s.phase, s.verified = PhaseDone, true
		s.verdict = err
		if releaseErr := p.Release(); releaseErr != nil {
			s.logger.Warnf("release after failed start: %v", releaseErr)
		}
		return err
	}

	s.phase = PhaseRunning
	s.logger.Infof("session started: %s", s.media.URL)
	return nil
}

func (s *Session) start(h host.Host) error {
	if err := s.selector.Bind(s.player); err != nil {
		return fmt.Errorf("apply selection policy: %w", err)
	}

	dsf := source.NewDataSourceFactory(h.UserAgent(), s.clock)
	media, err := s.buildSource(dsf, s.player.BandwidthMeter())
	if err != nil {
		return fmt.Errorf("build media source: %w", err)
	}
	s.media = media

	s.player.AddListener(s.monitor)
	if err := s.player.SetSource(media); err != nil {
		return fmt.Errorf("set source: %w", err)
	}
	if err := s.player.SetPlayWhenReady(true); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	s.coordinator.Arm(s.player, s.selector, h.Queue())
	return nil
}

// OnStop cancels scheduled actions, captures the media duration and releases the player.
// The session is DONE afterwards; the verdict is only computed by OnFinished.
func (s *Session) OnStop() {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseStopping

	s.coordinator.Disarm()
	s.monitor.Seal()
	s.sourceDuration = s.player.Duration()

	if err := s.player.Release(); err != nil {
		s.logger.Warnf("release player: %v", err)
	}
	s.phase = PhaseDone
	s.finishedAt = s.clock.Now()
	s.logger.Infof("session stopped: played %s of %s", s.monitor.PlayingTime(), formatDuration(s.sourceDuration))
}

// IsFinished reports whether playback reached completion.
func (s *Session) IsFinished() bool {
	return s.monitor != nil && s.monitor.Finished()
}

// OnFinished returns the verdict: a *FatalError when the player failed, otherwise the
// first *AssertionError or extra assertion failure, or nil when the session passed.
func (s *Session) OnFinished() error {
	if s.verified {
		return s.verdict
	}

	s.verdict, s.verified = s.verify(), true
	if s.clock != nil && s.finishedAt.IsZero() {
		s.finishedAt = s.clock.Now()
	}

	if s.verdict != nil {
		s.logger.Errorf("session failed: %v", s.verdict)
	} else {
		s.logger.Infof("session passed")
	}
	return s.verdict
}

func (s *Session) verify() error {
	if s.monitor == nil {
		return fmt.Errorf("%s: session never started", s.tag)
	}

	if err := s.monitor.Err(); err != nil {
		return &FatalError{Tag: s.tag, Err: err}
	}

	metrics := s.Metrics()
	s.opts.logMetrics(s.logger, metrics)

	if s.fullPlaybackNoSeeking {
		if err := checkDuration(metrics.PlayingTime, metrics.SourceDuration); err != nil {
			return err
		}
	}

	if s.opts.assert != nil {
		if err := s.opts.assert(metrics); err != nil {
			return err
		}
	}
	return nil
}

// checkDuration passes when playing time and media duration differ by at most
// constant.MaxPlayingTimeDiscrepancy. An unknown duration fails.
func checkDuration(playing, duration time.Duration) error {
	if duration == player.DurationUnknown {
		return &AssertionError{
			What:     "media duration",
			Measured: playing,
			Expected: "a known duration",
			Message:  fmt.Sprintf("total playing time: %d. actual media duration: unknown", playing.Milliseconds()),
		}
	}

	diff := playing - duration
	if diff < 0 {
		diff = -diff
	}
	if diff <= constant.MaxPlayingTimeDiscrepancy {
		return nil
	}

	return &AssertionError{
		What:     "playing time",
		Measured: playing,
		Expected: duration,
		Message:  fmt.Sprintf("total playing time: %d. actual media duration: %d", playing.Milliseconds(), duration.Milliseconds()),
	}
}

// Metrics returns what the session measured so far.
func (s *Session) Metrics() Metrics {
	m := Metrics{Tag: s.tag, SourceDuration: s.sourceDuration}
	if s.monitor != nil {
		m.PlayingTime = s.monitor.PlayingTime()
		m.Reason = s.monitor.Reason()
		m.Audio = s.monitor.Counters(player.TrackAudio)
		m.Video = s.monitor.Counters(player.TrackVideo)
	}
	return m
}

// Status returns a snapshot for observers.
func (s *Session) Status() Status {
	st := Status{Tag: s.tag, Phase: s.phase}
	if s.monitor != nil {
		st.Monitor = s.monitor.Status()
	}
	return st
}

// Result returns the persisted form of the session outcome.
func (s *Session) Result() *report.Result {
	m := s.Metrics()
	r := &report.Result{
		ID:               s.id,
		Tag:              s.tag,
		Media:            s.media.URL,
		StartedAt:        s.startedAt,
		FinishedAt:       s.finishedAt,
		Passed:           s.verified && s.verdict == nil,
		Reason:           m.Reason.String(),
		FullPlayback:     s.fullPlaybackNoSeeking,
		PlayingTimeMs:    m.PlayingTime.Milliseconds(),
		SourceDurationMs: m.SourceDuration.Milliseconds(),
		Audio:            m.Audio,
		Video:            m.Video,
	}
	if m.SourceDuration == player.DurationUnknown {
		r.SourceDurationMs = -1
	}
	if s.monitor != nil {
		r.ClockAnomalies = s.monitor.Anomalies()
	}
	if s.verdict != nil {
		r.Failure = s.verdict.Error()
	}
	return r
}

func formatDuration(d time.Duration) string {
	if d == player.DurationUnknown {
		return "unknown"
	}
	return d.String()
}
