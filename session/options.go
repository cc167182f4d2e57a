package session

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/codec"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/monitor"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/source"
)

// SourceBuilder creates the media of a session from a data-source factory carrying the
// host user agent and the bandwidth meter of the player.
type SourceBuilder func(dsf *source.DataSourceFactory, meter *source.BandwidthMeter) (source.Media, error)

// Metrics is what a session measured, handed to the metrics logger and extra assertions.
type Metrics struct {
	Tag            string
	PlayingTime    time.Duration
	SourceDuration time.Duration
	Reason         monitor.Reason
	Audio          codec.Counters
	Video          codec.Counters
}

// Option customizes a session.
type Option func(*options)

type options struct {
	policy       player.SelectionPolicy
	buildPlayer  player.Builder
	playerConfig player.Config
	onError      func(err error)
	logMetrics   func(logger log.Tagged, m Metrics)
	assert       func(m Metrics) error
	clock        clockwork.Clock
}

func defaultOptions() options {
	return options{
		policy:      player.DefaultSelectionPolicy(),
		buildPlayer: player.NewMPVBuilder(),
		onError:     func(error) {},
		logMetrics: func(logger log.Tagged, m Metrics) {
			logger.Infof("audio %s", m.Audio)
			logger.Infof("video %s", m.Video)
		},
	}
}

// WithSelectionPolicy sets the renderers the session starts with.
func WithSelectionPolicy(policy player.SelectionPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithPlayerBuilder replaces the mpv player.
func WithPlayerBuilder(build player.Builder) Option {
	return func(o *options) {
		o.buildPlayer = build
	}
}

// WithPlayerConfig sets the config handed to the player builder.
func WithPlayerConfig(cfg player.Config) Option {
	return func(o *options) {
		o.playerConfig = cfg
	}
}

// WithErrorHook sets a function called with the first player error, on the control queue.
func WithErrorHook(hook func(err error)) Option {
	return func(o *options) {
		o.onError = hook
	}
}

// WithMetricsLogger replaces the logging of merged codec counters at the end of a session.
func WithMetricsLogger(logMetrics func(logger log.Tagged, m Metrics)) Option {
	return func(o *options) {
		o.logMetrics = logMetrics
	}
}

// WithAssertions adds checks run after the duration check. A non-nil error fails the session.
func WithAssertions(assert func(m Metrics) error) Option {
	return func(o *options) {
		o.assert = assert
	}
}

// WithClock sets the clock playing time is measured with. It defaults to the queue clock.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}
