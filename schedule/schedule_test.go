package schedule

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/player/playertest"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// eventually polls cond on the queue for up to a second.
func eventually(q *dispatch.Queue, cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		ok := false
		if err := q.Sync(func() { ok = cond() }); err != nil {
			return false
		}
		if ok {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

// recording is a schedule that notes where it was started and can post one delayed action.
type recording struct {
	started chan *dispatch.Handler
	delay   time.Duration
	fired   chan struct{}
}

func newRecording(delay time.Duration) *recording {
	return &recording{
		started: make(chan *dispatch.Handler, 1),
		delay:   delay,
		fired:   make(chan struct{}, 1),
	}
}

func (r *recording) Start(_ player.Player, _ *player.TrackSelector, h *dispatch.Handler) {
	r.started <- h
	if r.delay > 0 {
		h.PostDelayed(r.delay, func() { r.fired <- struct{}{} })
	}
}

func TestCoordinator(t *testing.T) {
	Convey("Given a coordinator and a control queue", t, func() {
		clock := clockwork.NewFakeClock()
		q := dispatch.New(clock)
		Reset(q.Close)

		c := NewCoordinator()
		fake := playertest.New(q.NewHandler())
		sel := player.NewTrackSelector(player.DefaultSelectionPolicy())

		Convey("A schedule set before arming waits in the slot", func() {
			first, second := newRecording(0), newRecording(0)
			c.Set(first)
			c.Set(second)
			So(c.Pending(), ShouldBeTrue)
			So(c.Armed(), ShouldBeFalse)

			Convey("Arming starts only the latest one on the control queue", func() {
				c.Arm(fake, sel, q)
				So(q.Sync(func() {}), ShouldBeNil)

				So(c.Pending(), ShouldBeFalse)
				So(len(first.started), ShouldEqual, 0)
				So(len(second.started), ShouldEqual, 1)
				So((<-second.started).Queue(), ShouldEqual, q)
			})
		})

		Convey("Arming with an empty slot starts nothing", func() {
			c.Arm(fake, sel, q)
			So(c.Armed(), ShouldBeTrue)
			So(c.Pending(), ShouldBeFalse)
		})

		Convey("A schedule set after arming is dispatched on the control queue", func() {
			c.Arm(fake, sel, q)

			gate := make(chan struct{})
			q.Post(func() { <-gate })

			r := newRecording(0)
			c.Set(r)
			So(len(r.started), ShouldEqual, 0)

			close(gate)
			So(q.Sync(func() {}), ShouldBeNil)
			So(len(r.started), ShouldEqual, 1)
		})

		Convey("Replacing the active schedule cancels its future actions", func() {
			c.Arm(fake, sel, q)
			old := newRecording(5 * time.Second)
			c.Set(old)
			clock.BlockUntil(1)

			replacement := newRecording(0)
			c.Set(replacement)
			So(q.Sync(func() {}), ShouldBeNil)
			So(len(replacement.started), ShouldEqual, 1)

			clock.Advance(10 * time.Second)
			So(q.Sync(func() {}), ShouldBeNil)
			So(len(old.fired), ShouldEqual, 0)
		})

		Convey("A nil schedule is ignored", func() {
			c.Set(nil)
			So(c.Pending(), ShouldBeFalse)

			c.Arm(fake, sel, q)
			active := newRecording(5 * time.Second)
			c.Set(active)
			clock.BlockUntil(1)

			c.Set(nil)
			So(q.Sync(func() {}), ShouldBeNil)

			clock.Advance(5 * time.Second)
			So(eventually(q, func() bool { return len(active.fired) == 1 }), ShouldBeTrue)
		})

		Convey("Disarming withdraws future actions", func() {
			c.Arm(fake, sel, q)
			r := newRecording(time.Second)
			c.Set(r)
			clock.BlockUntil(1)

			c.Disarm()
			So(c.Armed(), ShouldBeFalse)
			clock.Advance(2 * time.Second)
			So(q.Sync(func() {}), ShouldBeNil)
			So(len(r.fired), ShouldEqual, 0)
		})
	})
}

func TestActionSchedule(t *testing.T) {
	Convey("Given an action schedule against a fake player", t, func() {
		clock := clockwork.NewFakeClock()
		q := dispatch.New(clock)
		Reset(q.Close)

		fake := playertest.New(q.NewHandler())
		sel := player.NewTrackSelector(player.DefaultSelectionPolicy())
		So(sel.Bind(fake), ShouldBeNil)

		s := NewBuilder("test").
			Delay(time.Second).Pause().
			Delay(time.Second).Seek(30 * time.Second).
			Delay(time.Second).DisableTrack(player.TrackVideo).
			Delay(time.Second).Play().
			Delay(time.Second).Stop().
			Delay(time.Hour).
			Build()

		Convey("Its steps keep their delays and drop the trailing one", func() {
			steps := s.Steps()
			So(steps, ShouldHaveLength, 5)
			So(steps[1], ShouldResemble, Step{Delay: time.Second, Action: Seek{Position: 30 * time.Second}})
			So(s.String(), ShouldContainSubstring, "5s  stop")
		})

		Convey("Starting it runs every action in order as the clock advances", func() {
			h := q.NewHandler()
			So(q.Sync(func() { s.Start(fake, sel, h) }), ShouldBeNil)

			for i := 0; i < 5; i++ {
				clock.BlockUntil(1)
				clock.Advance(time.Second)
			}
			So(eventually(q, func() bool { return fake.Called("Stop") }), ShouldBeTrue)

			var methods []string
			for _, call := range fake.Calls() {
				methods = append(methods, call.Method)
			}
			So(methods, ShouldResemble, []string{"SetPlayWhenReady", "Seek", "SetTrackEnabled", "SetPlayWhenReady", "Stop"})
			So(sel.RendererDisabled(player.TrackVideo), ShouldBeTrue)
		})
	})
}
