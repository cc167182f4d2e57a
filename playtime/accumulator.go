// Package playtime accumulates the wall-clock time a player spends actively playing.
//
// Time is summed over closed intervals rather than sampled from the playback position,
// since positions reported around state transitions are unreliable. Timestamps must come
// from a monotonic source: time.Time values produced by a clockwork.Clock carry Go's
// monotonic reading, so Sub is immune to wall-clock adjustments.
package playtime

import (
	"time"

	"github.com/playcheck-cli/playcheck/log"
)

// Accumulator sums the durations of closed playing intervals.
// It is not safe for concurrent use; it lives on the session control queue.
type Accumulator struct {
	total     time.Duration
	start     time.Time
	open      bool
	anomalies int
	logger    log.Tagged
}

// New returns an empty accumulator that reports clock anomalies through logger.
func New(logger log.Tagged) *Accumulator {
	return &Accumulator{logger: logger}
}

// Start opens an interval at now. Starting an already open interval keeps the original start.
func (a *Accumulator) Start(now time.Time) {
	if a.open {
		return
	}
	a.start = now
	a.open = true
}

// End closes the open interval at now and returns the duration added to the total.
// A now earlier than the interval start is a clock anomaly: nothing is added.
func (a *Accumulator) End(now time.Time) time.Duration {
	if !a.open {
		return 0
	}
	a.open = false

	delta := now.Sub(a.start)
	if delta < 0 {
		a.anomalies++
		a.logger.Warnf("clock anomaly: interval end %s precedes start by %s, counting zero", now.Format(time.RFC3339Nano), -delta)
		return 0
	}

	a.total += delta
	return delta
}

// Total returns the time accumulated over all closed intervals.
func (a *Accumulator) Total() time.Duration {
	return a.total
}

// Open reports whether an interval is currently open.
func (a *Accumulator) Open() bool {
	return a.open
}

// OpenedAt returns the start of the open interval.
func (a *Accumulator) OpenedAt() (time.Time, bool) {
	return a.start, a.open
}

// Anomalies returns the number of intervals discarded because the clock went backwards.
func (a *Accumulator) Anomalies() int {
	return a.anomalies
}
