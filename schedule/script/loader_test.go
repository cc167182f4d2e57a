package script

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func write(name, contents string) string {
	path := filepath.Join("schedules", name)
	So(filesystem.API().WriteFile(path, []byte(contents), 0644), ShouldBeNil)
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a schedule script", t, func() {
		path := write("pause_and_seek.lua", `
function Actions()
	return {
		{ after = 5000, action = "pause" },
		{ after = 1500, action = "play" },
		{ after = 1000, action = "seek", position = 30000 },
		{ after = 250, action = "disable_track", track = "video" },
		{ action = "enable_track", track = "video" },
		{ after = 2000, action = "stop" },
	}
end
`)

		Convey("It loads into a schedule with the given delays", func() {
			s, err := Load(path, "test")
			So(err, ShouldBeNil)
			So(s.Steps(), ShouldResemble, []schedule.Step{
				{Delay: 5 * time.Second, Action: schedule.SetPlayWhenReady{PlayWhenReady: false}},
				{Delay: 1500 * time.Millisecond, Action: schedule.SetPlayWhenReady{PlayWhenReady: true}},
				{Delay: time.Second, Action: schedule.Seek{Position: 30 * time.Second}},
				{Delay: 250 * time.Millisecond, Action: schedule.SetRendererDisabled{Track: player.TrackVideo, Disabled: true}},
				{Delay: 0, Action: schedule.SetRendererDisabled{Track: player.TrackVideo, Disabled: false}},
				{Delay: 2 * time.Second, Action: schedule.Stop{}},
			})

			Convey("And loads the same way from the cached bytecode", func() {
				again, err := Load(path, "test")
				So(err, ShouldBeNil)
				So(again.Steps(), ShouldResemble, s.Steps())
			})
		})
	})

	Convey("Broken scripts are rejected", t, func() {
		cases := map[string]string{
			"missing_fn.lua":    `local x = 1`,
			"not_a_table.lua":   `function Actions() return 42 end`,
			"unknown.lua":       `function Actions() return { { action = "rewind" } } end`,
			"seek_no_pos.lua":   `function Actions() return { { action = "seek" } } end`,
			"negative.lua":      `function Actions() return { { after = -1, action = "stop" } } end`,
			"bad_track.lua":     `function Actions() return { { action = "disable_track", track = "text" } } end`,
			"syntax.lua":        `function Actions( return end`,
			"runtime_error.lua": `function Actions() error("boom") end`,
			"entry_not_tbl.lua": `function Actions() return { "pause" } end`,
			"after_not_num.lua": `function Actions() return { { after = "soon", action = "stop" } } end`,
		}

		for name, contents := range cases {
			_, err := Load(write(name, contents), "test")
			So(err, ShouldNotBeNil)
		}

		_, err := Load(filepath.Join("schedules", "absent.lua"), "test")
		So(err, ShouldNotBeNil)
	})
}
