package player

import "fmt"

// State is the playback state of a player.
type State int

const (
	StateIdle State = iota + 1
	StateBuffering
	StateReady
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateBuffering:
		return "BUFFERING"
	case StateReady:
		return "READY"
	case StateEnded:
		return "ENDED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TrackType identifies a renderer.
type TrackType int

const (
	TrackAudio TrackType = iota + 1
	TrackVideo
)

func (t TrackType) String() string {
	switch t {
	case TrackAudio:
		return "audio"
	case TrackVideo:
		return "video"
	default:
		return fmt.Sprintf("TrackType(%d)", int(t))
	}
}

// ParseTrackType parses "audio" or "video".
func ParseTrackType(s string) (TrackType, error) {
	switch s {
	case "audio":
		return TrackAudio, nil
	case "video":
		return TrackVideo, nil
	default:
		return 0, fmt.Errorf("unknown track type %q", s)
	}
}
