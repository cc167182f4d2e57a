// Package report persists the verdicts of playback sessions.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playcheck-cli/playcheck/codec"
)

// Result is the persisted outcome of one playback session.
type Result struct {
	ID               uuid.UUID      `json:"id" jsonschema:"description=Unique identifier of the session run."`
	Tag              string         `json:"tag" jsonschema:"description=Tag the session was run with."`
	Media            string         `json:"media" jsonschema:"description=URL or path of the media played."`
	StartedAt        time.Time      `json:"startedAt" jsonschema:"description=Time the session started."`
	FinishedAt       time.Time      `json:"finishedAt" jsonschema:"description=Time the verdict was produced."`
	Passed           bool           `json:"passed" jsonschema:"description=Whether every check passed."`
	Failure          string         `json:"failure,omitempty" jsonschema:"description=Why the session failed."`
	Reason           string         `json:"reason" jsonschema:"enum=ended,enum=reset,enum=none,description=How playback finished."`
	FullPlayback     bool           `json:"fullPlayback" jsonschema:"description=Whether the playing time was checked against the media duration."`
	PlayingTimeMs    int64          `json:"playingTimeMs" jsonschema:"description=Measured playing time in milliseconds."`
	SourceDurationMs int64          `json:"sourceDurationMs" jsonschema:"description=Media duration in milliseconds, -1 when unknown."`
	ClockAnomalies   int            `json:"clockAnomalies" jsonschema:"description=Playing intervals discarded because the clock went backwards."`
	Audio            codec.Counters `json:"audio" jsonschema:"description=Merged audio decoder counters."`
	Video            codec.Counters `json:"video" jsonschema:"description=Merged video decoder counters."`
}

// Verdict returns PASS or FAIL.
func (r *Result) Verdict() string {
	if r.Passed {
		return "PASS"
	}
	return "FAIL"
}

func (r *Result) String() string {
	return fmt.Sprintf("%s %s (%s) played %s", r.Verdict(), r.Tag, r.Media, time.Duration(r.PlayingTimeMs)*time.Millisecond)
}
