package prune

import (
	"testing"
	"time"

	"github.com/playcheck-cli/playcheck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStale(t *testing.T) {
	Convey("Given a directory with old and fresh files", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		now := time.Now()

		So(fs.WriteFile("/tmp/playcheck/mpv-old.sock", nil, 0o600), ShouldBeNil)
		So(fs.WriteFile("/tmp/playcheck/mpv-new.sock", nil, 0o600), ShouldBeNil)
		So(fs.Chtimes("/tmp/playcheck/mpv-old.sock", now.Add(-48*time.Hour), now.Add(-48*time.Hour)), ShouldBeNil)

		Convey("Only the old file is removed", func() {
			n, err := Stale("/tmp/playcheck", SocketTTL, now)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			old, _ := fs.Exists("/tmp/playcheck/mpv-old.sock")
			fresh, _ := fs.Exists("/tmp/playcheck/mpv-new.sock")
			So(old, ShouldBeFalse)
			So(fresh, ShouldBeTrue)
		})

		Convey("A longer TTL keeps both", func() {
			n, err := Stale("/tmp/playcheck", LogTTL, now)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})
}
