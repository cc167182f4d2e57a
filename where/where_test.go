package where

import (
	"path/filepath"
	"testing"

	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func isDir(path string) bool {
	return lo.Must(filesystem.API().IsDir(path))
}

func TestDirectories(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("With the config directory overridden", t, func() {
		t.Setenv(EnvConfigPath, "/playcheck/config")

		So(Config(), ShouldEqual, "/playcheck/config")
		So(isDir(Config()), ShouldBeTrue)

		Convey("Schedules and logs are created beneath it", func() {
			So(Schedules(), ShouldEqual, "/playcheck/config/schedules")
			So(Logs(), ShouldEqual, "/playcheck/config/logs")
			So(isDir(Schedules()), ShouldBeTrue)
			So(isDir(Logs()), ShouldBeTrue)
		})
	})

	Convey("An empty override falls back to the user config dir", t, func() {
		t.Setenv(EnvConfigPath, "")
		So(filepath.Base(Config()), ShouldEqual, "playcheck")
	})

	Convey("Reports is a file inside the cache dir", t, func() {
		So(filepath.Dir(Reports()), ShouldEqual, Cache())
		So(filepath.Ext(Reports()), ShouldEqual, ".json")
	})

	Convey("Temp is created", t, func() {
		So(isDir(Temp()), ShouldBeTrue)
	})
}
