package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwitch(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		Reset(SetOsFs)

		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("Files written through gache land in it", func() {
			var fs GacheFs
			So(fs.MkdirAll("/cache", 0o755), ShouldBeNil)

			f, err := fs.OpenFile("/cache/version.json", os.O_RDWR|os.O_CREATE, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte(`{"latest":"0.2.0"}`))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/version.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "0.2.0")
		})

		Convey("Switching back restores the disk", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})
	})
}
