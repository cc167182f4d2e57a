// Package codec aggregates per-track decoder activity reported by a player.
package codec

import "fmt"

// Counters records decoder activity for one track.
type Counters struct {
	DecoderInitCount                       int `json:"decoderInitCount" jsonschema:"description=Number of decoder initializations."`
	DecoderReleaseCount                    int `json:"decoderReleaseCount" jsonschema:"description=Number of decoder releases."`
	InputBufferCount                       int `json:"inputBufferCount" jsonschema:"description=Number of buffers queued to the decoder."`
	RenderedOutputBufferCount              int `json:"renderedOutputBufferCount" jsonschema:"description=Number of decoded buffers rendered."`
	SkippedOutputBufferCount               int `json:"skippedOutputBufferCount" jsonschema:"description=Number of decoded buffers skipped."`
	DroppedOutputBufferCount               int `json:"droppedOutputBufferCount" jsonschema:"description=Number of decoded buffers dropped."`
	MaxConsecutiveDroppedOutputBufferCount int `json:"maxConsecutiveDroppedOutputBufferCount" jsonschema:"description=Longest run of consecutively dropped buffers."`
}

// Merge combines two counter sets. Counts are summed; the consecutive-drop field keeps
// the maximum, since runs from separate enable periods never join.
// Merge is associative and commutative.
func Merge(a, b Counters) Counters {
	return Counters{
		DecoderInitCount:                       a.DecoderInitCount + b.DecoderInitCount,
		DecoderReleaseCount:                    a.DecoderReleaseCount + b.DecoderReleaseCount,
		InputBufferCount:                       a.InputBufferCount + b.InputBufferCount,
		RenderedOutputBufferCount:              a.RenderedOutputBufferCount + b.RenderedOutputBufferCount,
		SkippedOutputBufferCount:               a.SkippedOutputBufferCount + b.SkippedOutputBufferCount,
		DroppedOutputBufferCount:               a.DroppedOutputBufferCount + b.DroppedOutputBufferCount,
		MaxConsecutiveDroppedOutputBufferCount: max(a.MaxConsecutiveDroppedOutputBufferCount, b.MaxConsecutiveDroppedOutputBufferCount),
	}
}

// IsZero reports whether no activity was recorded.
func (c Counters) IsZero() bool {
	return c == Counters{}
}

func (c Counters) String() string {
	return fmt.Sprintf(
		"inits=%d releases=%d queued=%d rendered=%d skipped=%d dropped=%d maxConsecutiveDropped=%d",
		c.DecoderInitCount,
		c.DecoderReleaseCount,
		c.InputBufferCount,
		c.RenderedOutputBufferCount,
		c.SkippedOutputBufferCount,
		c.DroppedOutputBufferCount,
		c.MaxConsecutiveDroppedOutputBufferCount,
	)
}
