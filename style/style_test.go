package style

import (
	"testing"

	"github.com/playcheck-cli/playcheck/color"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep the text", t, func() {
		So(Fg(color.Green)("PASS"), ShouldContainSubstring, "PASS")
		So(Verdict(false)("FAIL"), ShouldContainSubstring, "FAIL")
		So(Title("smoke"), ShouldContainSubstring, "smoke")
		So(ErrorTitle("FAIL"), ShouldContainSubstring, "FAIL")
		So(Faint("audio"), ShouldContainSubstring, "audio")
	})

	Convey("Truncate pads to the given width", t, func() {
		So(len(Truncate(10)("abc")), ShouldBeGreaterThanOrEqualTo, 10)
	})

	Convey("Verdict colors differ", t, func() {
		So(color.Verdict(true), ShouldNotEqual, color.Verdict(false))
	})
}
