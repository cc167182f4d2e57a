package script

import (
	"fmt"
	"time"

	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/schedule"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// getMillis reads a millisecond field. Missing fields are zero, negative ones are errors.
func getMillis(table *lua.LTable, key string) (time.Duration, error) {
	val := table.RawGetString(key)
	switch val.Type() {
	case lua.LTNil:
		return 0, nil
	case lua.LTNumber:
		ms := float64(val.(lua.LNumber))
		if ms < 0 {
			return 0, fmt.Errorf("%s must not be negative", key)
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %s", key, val.Type())
	}
}

// addFromTable appends the action described by table to b.
func addFromTable(b *schedule.Builder, table *lua.LTable) error {
	after, err := getMillis(table, "after")
	if err != nil {
		return err
	}
	b.Delay(after)

	action := getString(table, "action")
	switch action {
	case "pause":
		b.Pause()
	case "play":
		b.Play()
	case "stop":
		b.Stop()
	case "seek":
		if table.RawGetString("position").Type() == lua.LTNil {
			return fmt.Errorf("seek requires a position")
		}
		position, err := getMillis(table, "position")
		if err != nil {
			return err
		}
		b.Seek(position)
	case "disable_track", "enable_track":
		track, err := player.ParseTrackType(getString(table, "track"))
		if err != nil {
			return fmt.Errorf("%s: %w", action, err)
		}
		if action == "disable_track" {
			b.DisableTrack(track)
		} else {
			b.EnableTrack(track)
		}
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}
