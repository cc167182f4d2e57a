package player

import (
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildArgs(t *testing.T) {
	Convey("Given a remote media with headers", t, func() {
		media := source.Media{
			URL:   "https://example.com/video.mp4",
			Title: "Test\nVideo",
			Headers: map[string]string{
				"User-Agent": "PlaycheckPlaybackTests/test",
				"Referer":    "https://example.com",
				"Cookie":     "a=1,b=2",
			},
		}

		Convey("The user agent gets its own flag and other headers are joined", func() {
			args := buildArgs("/tmp/s.sock", media, Surface{}, Config{}, nil)
			So(args, ShouldContain, "--user-agent=PlaycheckPlaybackTests/test")
			So(args, ShouldContain, "--http-header-fields=Cookie: a=1%2Cb=2,Referer: https://example.com")
			So(args, ShouldContain, "--force-media-title=Test Video")
			So(args[len(args)-1], ShouldEqual, media.URL)
		})

		Convey("Strict audio timestamps turn timestamp correction on", func() {
			So(buildArgs("/tmp/s.sock", media, Surface{}, Config{StrictAudioTimestamps: true}, nil), ShouldContain, "--correct-pts=yes")
			So(buildArgs("/tmp/s.sock", media, Surface{}, Config{}, nil), ShouldContain, "--correct-pts=no")
		})

		Convey("The surface and disabled renderers are honoured", func() {
			args := buildArgs("/tmp/s.sock", media, Surface{VideoOutput: "null"}, Config{}, map[TrackType]bool{TrackVideo: true})
			So(args, ShouldContain, "--vo=null")
			So(args, ShouldContain, "--vid=no")
			So(args, ShouldNotContain, "--aid=no")
		})
	})
}

func TestStateTracker(t *testing.T) {
	Convey("Given a tracker", t, func() {
		clock := clockwork.NewFakeClock()
		tr := newStateTracker(clock)

		Convey("Setting a source moves it to BUFFERING", func() {
			So(tr.setSource(), ShouldResemble, []Event{StateChanged{State: StateBuffering}})

			Convey("Then play-when-ready and file-loaded make it READY", func() {
				So(tr.setPlayWhenReady(true), ShouldResemble, []Event{StateChanged{PlayWhenReady: true, State: StateBuffering}})
				So(tr.event("file-loaded", map[string]interface{}{}), ShouldResemble, []Event{StateChanged{PlayWhenReady: true, State: StateReady}})

				Convey("A repeated pause=false is a no-op", func() {
					So(tr.property("pause", false), ShouldBeEmpty)
				})

				Convey("Waiting on the cache buffers", func() {
					So(tr.property("paused-for-cache", true), ShouldResemble, []Event{StateChanged{PlayWhenReady: true, State: StateBuffering}})
				})

				Convey("Reaching the end of file ends playback", func() {
					So(tr.property("eof-reached", true), ShouldResemble, []Event{StateChanged{PlayWhenReady: true, State: StateEnded}})
				})

				Convey("Stopping returns to IDLE", func() {
					So(tr.stop(), ShouldResemble, []Event{StateChanged{PlayWhenReady: true, State: StateIdle}})
				})
			})
		})

		Convey("A failed file reports one error", func() {
			tr.setSource()
			evs := tr.event("end-file", map[string]interface{}{"reason": "error", "file_error": "loading failed"})
			So(evs, ShouldHaveLength, 2)
			So(evs[0], ShouldHaveSameTypeAs, Error{})
			So(evs[1], ShouldResemble, StateChanged{State: StateIdle})
			So(tr.event("end-file", map[string]interface{}{"reason": "error"}), ShouldBeEmpty)
		})

		Convey("A video track hands over its counters when disabled", func() {
			So(tr.property("vid", float64(1)), ShouldResemble, []Event{TrackEnabled{Track: TrackVideo}})
			So(tr.property("video-codec", "h264"), ShouldResemble, []Event{DecoderInitialized{Track: TrackVideo, Name: "h264"}})
			tr.property("estimated-frame-number", float64(100))
			tr.property("decoder-frame-drop-count", float64(2))

			drops := tr.property("frame-drop-count", float64(3))
			So(drops, ShouldResemble, []Event{DroppedFrames{Count: 3}})

			clock.Advance(1500 * 1e6)
			So(tr.property("frame-drop-count", float64(4)), ShouldResemble, []Event{DroppedFrames{Count: 1, Elapsed: 1500 * 1e6}})

			evs := tr.property("vid", false)
			So(evs, ShouldHaveLength, 1)
			disabled := evs[0].(TrackDisabled)
			So(disabled.Track, ShouldEqual, TrackVideo)
			So(disabled.Counters.DecoderInitCount, ShouldEqual, 1)
			So(disabled.Counters.DecoderReleaseCount, ShouldEqual, 1)
			So(disabled.Counters.RenderedOutputBufferCount, ShouldEqual, 100)
			So(disabled.Counters.SkippedOutputBufferCount, ShouldEqual, 2)
			So(disabled.Counters.DroppedOutputBufferCount, ShouldEqual, 4)
			So(disabled.Counters.MaxConsecutiveDroppedOutputBufferCount, ShouldEqual, 4)
			So(disabled.Counters.InputBufferCount, ShouldEqual, 106)

			Convey("And the live counters start over", func() {
				So(tr.tracks[TrackVideo].counters.IsZero(), ShouldBeTrue)
			})
		})

		Convey("Release disables only enabled tracks", func() {
			tr.property("aid", float64(1))
			evs := tr.release()
			So(evs, ShouldHaveLength, 1)
			So(evs[0].(TrackDisabled).Track, ShouldEqual, TrackAudio)
			So(tr.release(), ShouldBeEmpty)
		})

		Convey("A cache stall with audio enabled reports an underrun", func() {
			tr.property("aid", float64(1))
			tr.property("demuxer-cache-duration", 0.25)
			clock.Advance(400 * 1e6)
			evs := tr.property("paused-for-cache", true)
			So(evs, ShouldContain, AudioUnderrun{BufferSizeMs: 250, ElapsedSinceLastFeedMs: 400})
		})
	})
}

func TestWatcherProcess(t *testing.T) {
	Convey("Given a watcher recording callbacks", t, func() {
		var names []string
		var datas []interface{}
		w := &watcher{callback: func(name string, data interface{}, payload map[string]interface{}) {
			names = append(names, name)
			datas = append(datas, data)
		}}

		Convey("Property changes and events are forwarded, replies are not", func() {
			w.process([]byte(`{"event":"property-change","id":1,"name":"pause","data":true}`))
			w.process([]byte(`{"event":"end-file","reason":"eof"}`))
			w.process([]byte(`{"request_id":0,"error":"success"}`))
			w.process([]byte(`not json`))

			So(names, ShouldResemble, []string{"pause", "end-file"})
			So(datas[0], ShouldEqual, true)
		})
	})
}

func TestDecodeReply(t *testing.T) {
	Convey("mpv replies are decoded", t, func() {
		data, err := decodeReply([]byte(`{"data":12.5,"error":"success","request_id":7}`), 7)
		So(err, ShouldBeNil)
		So(data, ShouldEqual, 12.5)

		_, err = decodeReply([]byte(`{"error":"property unavailable","request_id":7}`), 7)
		So(err, ShouldNotBeNil)

		_, err = decodeReply([]byte(`{"event":"playback-restart"}`), 7)
		So(err, ShouldEqual, errNotReply)

		_, err = decodeReply([]byte(`{"data":1,"error":"success","request_id":6}`), 7)
		So(err, ShouldEqual, errNotReply)
	})

	Convey("Replies are read past interleaved events", t, func() {
		stream := strings.NewReader(`{"event":"idle"}
{"data":null,"error":"success","request_id":3}
{"data":61.5,"error":"success","request_id":4}
`)
		data, err := readReply(stream, 4)
		So(err, ShouldBeNil)
		So(data, ShouldEqual, 61.5)
	})

	Convey("A stream without the reply is an error", t, func() {
		_, err := readReply(strings.NewReader(`{"event":"idle"}`+"\n"), 9)
		So(err, ShouldNotBeNil)
	})

	Convey("Requests carry their id", t, func() {
		payload, err := encodeCommand(5, []interface{}{"get_property", "duration"})
		So(err, ShouldBeNil)
		So(string(payload), ShouldEqual, `{"command":["get_property","duration"],"request_id":5}`+"\n")
	})
}

func TestMPVBeforeStart(t *testing.T) {
	Convey("Given an mpv player that was never started", t, func() {
		q := dispatch.New(clockwork.NewFakeClock())
		Reset(q.Close)
		m := NewMPV(q.NewHandler(), Surface{}, Config{})

		Convey("It is idle with an unknown duration", func() {
			So(m.State(), ShouldEqual, StateIdle)
			So(m.Duration(), ShouldEqual, DurationUnknown)
		})

		Convey("Track choices are recorded for start", func() {
			So(m.SetTrackEnabled(TrackAudio, false), ShouldBeNil)
			So(m.disabled[TrackAudio], ShouldBeTrue)
		})

		Convey("Release is a no-op", func() {
			So(m.Release(), ShouldBeNil)
		})
	})
}

func TestTrackSelector(t *testing.T) {
	Convey("Given a selector with video disabled by policy", t, func() {
		q := dispatch.New(clockwork.NewFakeClock())
		Reset(q.Close)
		m := NewMPV(q.NewHandler(), Surface{}, Config{})
		sel := NewTrackSelector(SelectionPolicy{Disabled: []TrackType{TrackVideo}})

		Convey("Toggling before binding fails", func() {
			So(sel.SetRendererDisabled(TrackAudio, true), ShouldNotBeNil)
		})

		Convey("Binding applies the policy to the player", func() {
			So(sel.Bind(m), ShouldBeNil)
			So(sel.RendererDisabled(TrackVideo), ShouldBeTrue)
			So(m.disabled[TrackVideo], ShouldBeTrue)

			So(sel.SetRendererDisabled(TrackVideo, false), ShouldBeNil)
			So(sel.RendererDisabled(TrackVideo), ShouldBeFalse)
		})
	})
}

func TestParseTrackType(t *testing.T) {
	Convey("Track types parse from their names", t, func() {
		for _, tt := range []TrackType{TrackAudio, TrackVideo} {
			parsed, err := ParseTrackType(tt.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, tt)
		}
		_, err := ParseTrackType("text")
		So(err, ShouldNotBeNil)
	})
}
