package dispatch

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// waitClosed blocks until ch is closed or a second passes.
func waitClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestQueue(t *testing.T) {
	Convey("Given a running queue", t, func() {
		clock := clockwork.NewFakeClock()
		q := New(clock)
		Reset(q.Close)

		Convey("Tasks run in posting order", func() {
			var order []int
			for i := 0; i < 5; i++ {
				i := i
				So(q.Post(func() { order = append(order, i) }), ShouldBeTrue)
			}
			So(q.Sync(func() {}), ShouldBeNil)
			So(order, ShouldResemble, []int{0, 1, 2, 3, 4})
		})

		Convey("Sync waits for the task", func() {
			ran := false
			So(q.Sync(func() { ran = true }), ShouldBeNil)
			So(ran, ShouldBeTrue)
		})

		Convey("RemoveAll drops tasks already queued", func() {
			gate := make(chan struct{})
			q.Post(func() { <-gate })

			h := q.NewHandler()
			other := q.NewHandler()
			dropped, kept := false, false
			h.Post(func() { dropped = true })
			other.Post(func() { kept = true })

			h.RemoveAll()
			close(gate)

			So(q.Sync(func() {}), ShouldBeNil)
			So(dropped, ShouldBeFalse)
			So(kept, ShouldBeTrue)

			Convey("And the handler keeps working afterwards", func() {
				again := false
				h.Post(func() { again = true })
				So(q.Sync(func() {}), ShouldBeNil)
				So(again, ShouldBeTrue)
			})
		})

		Convey("RemoveAll called from a running task cancels the rest", func() {
			h := q.NewHandler()
			second := false
			h.Post(func() { h.RemoveAll() })
			h.Post(func() { second = true })
			So(q.Sync(func() {}), ShouldBeNil)
			So(second, ShouldBeFalse)
		})

		Convey("Delayed tasks run once the clock advances", func() {
			h := q.NewHandler()
			ran := make(chan struct{})
			So(h.PostDelayed(5*time.Second, func() { close(ran) }), ShouldBeTrue)
			So(h.Pending(), ShouldEqual, 1)

			clock.Advance(4 * time.Second)
			So(q.Sync(func() {}), ShouldBeNil)
			select {
			case <-ran:
				t.Fatal("delayed task ran early")
			default:
			}

			clock.Advance(time.Second)
			So(waitClosed(ran), ShouldBeTrue)
		})

		Convey("RemoveAll cancels delayed tasks", func() {
			h := q.NewHandler()
			ran := false
			h.PostDelayed(time.Second, func() { ran = true })
			h.RemoveAll()
			So(h.Pending(), ShouldEqual, 0)

			clock.Advance(2 * time.Second)
			So(q.Sync(func() {}), ShouldBeNil)
			So(ran, ShouldBeFalse)
		})
	})

	Convey("Given handlers replaced one after another", t, func() {
		clock := clockwork.NewFakeClock()
		q := New(clock)

		tracked := func() int {
			q.mu.Lock()
			defer q.mu.Unlock()
			return len(q.handlers)
		}

		var h *Handler
		for i := 0; i < 10; i++ {
			if h != nil {
				h.RemoveAll()
			}
			h = q.NewHandler()
		}

		Convey("Only the live handler is tracked", func() {
			So(tracked(), ShouldEqual, 1)
			q.Close()
		})

		Convey("A removed handler that schedules again is cancelled on Close", func() {
			h.RemoveAll()
			So(tracked(), ShouldEqual, 0)

			So(h.PostDelayed(time.Second, func() {}), ShouldBeTrue)
			So(tracked(), ShouldEqual, 1)

			q.Close()
			So(h.Pending(), ShouldEqual, 0)
		})
	})

	Convey("Given a closed queue", t, func() {
		q := New(clockwork.NewFakeClock())
		h := q.NewHandler()
		q.Close()

		Convey("Posting fails", func() {
			So(q.Post(func() {}), ShouldBeFalse)
			So(h.Post(func() {}), ShouldBeFalse)
			So(h.PostDelayed(time.Second, func() {}), ShouldBeFalse)
		})

		Convey("Sync reports the queue closed", func() {
			So(q.Sync(func() {}), ShouldEqual, ErrClosed)
		})

		Convey("Closing again is harmless", func() {
			q.Close()
		})
	})
}
