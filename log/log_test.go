package log

import (
	"bytes"
	"testing"

	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/where"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLog(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		var buf bytes.Buffer
		logrus.SetOutput(&buf)

		Convey("Nothing is emitted", func() {
			Warnf("dropped %d", 1)
			Tag("session").Errorf("dropped")
			So(buf.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		So(Setup(), ShouldBeNil)

		var buf bytes.Buffer
		logrus.SetOutput(&buf)
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})

		Convey("Tagged entries carry the tag field", func() {
			Tag("h264-720p").Debugf("state [%t, %s]", true, "READY")
			So(buf.String(), ShouldContainSubstring, "tag=h264-720p")
			So(buf.String(), ShouldContainSubstring, "state [true, READY]")
		})

		Convey("Untagged entries are emitted at their level", func() {
			Warnf("slow probe: %dms", 900)
			Debugf("noise")
			So(buf.String(), ShouldContainSubstring, "level=warning")
			So(buf.String(), ShouldContainSubstring, "slow probe: 900ms")
		})

		Convey("The daily file is created in the logs directory", func() {
			files, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(files, ShouldNotBeEmpty)
			So(files[0].Name(), ShouldStartWith, "playcheck-")
		})

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
		})
	})
}
