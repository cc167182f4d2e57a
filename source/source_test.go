package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMedia(t *testing.T) {
	Convey("Given a data source factory", t, func() {
		dsf := NewDataSourceFactory("PlaycheckPlaybackTests/test", clockwork.NewRealClock())

		Convey("Remote media carries the user agent", func() {
			m, err := dsf.Media("https://example.com/clip.mp4", "clip")
			So(err, ShouldBeNil)
			So(m.IsRemote(), ShouldBeTrue)
			So(m.Headers, ShouldResemble, map[string]string{"User-Agent": "PlaycheckPlaybackTests/test"})
		})

		Convey("Local media is cleaned and has no headers", func() {
			m, err := dsf.Media(" /videos/../videos/clip.mp4 ", "clip")
			So(err, ShouldBeNil)
			So(m.URL, ShouldEqual, "/videos/clip.mp4")
			So(m.Headers, ShouldBeNil)
		})

		Convey("Unsafe targets are rejected", func() {
			for _, target := range []string{"", "--script=evil.lua", "ftp://example.com/clip.mp4", "clip\n.mp4"} {
				_, err := dsf.Media(target, "clip")
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestProbe(t *testing.T) {
	Convey("Given a media server", t, func() {
		var (
			mu                     sync.Mutex
			userAgent, rangeHeader string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			userAgent = r.Header.Get("User-Agent")
			rangeHeader = r.Header.Get("Range")
			mu.Unlock()
			if strings.HasSuffix(r.URL.Path, "missing.mp4") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "video/mp4")
			w.WriteHeader(http.StatusPartialContent)
			time.Sleep(5 * time.Millisecond)
			_, _ = w.Write(make([]byte, 1024))
		}))
		defer server.Close()

		dsf := NewDataSourceFactory("PlaycheckPlaybackTests/test", clockwork.NewRealClock())
		meter := NewBandwidthMeter()

		Convey("A reachable file is sampled into the meter", func() {
			m, err := dsf.Media(server.URL+"/clip.mp4", "clip")
			So(err, ShouldBeNil)

			res, err := dsf.Probe(context.Background(), m, meter)
			So(err, ShouldBeNil)
			So(res.ContentType, ShouldEqual, "video/mp4")
			mu.Lock()
			So(userAgent, ShouldEqual, "PlaycheckPlaybackTests/test")
			So(rangeHeader, ShouldEqual, "bytes=0-65535")
			mu.Unlock()

			bps, ok := meter.Estimate()
			So(ok, ShouldBeTrue)
			So(bps, ShouldBeGreaterThan, 0)
		})

		Convey("A missing file fails the probe", func() {
			m, err := dsf.Media(server.URL+"/missing.mp4", "missing")
			So(err, ShouldBeNil)

			_, err = dsf.Probe(context.Background(), m, meter)
			So(err, ShouldNotBeNil)

			_, ok := meter.Estimate()
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given local media", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/videos/clip.mp4", make([]byte, 2048), 0o644), ShouldBeNil)

		dsf := NewDataSourceFactory("PlaycheckPlaybackTests/test", clockwork.NewRealClock())

		Convey("An existing file reports its size", func() {
			res, err := dsf.Probe(context.Background(), Media{URL: "/videos/clip.mp4"}, nil)
			So(err, ShouldBeNil)
			So(res.Size, ShouldEqual, 2048)
		})

		Convey("A directory is rejected", func() {
			_, err := dsf.Probe(context.Background(), Media{URL: "/videos"}, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file is rejected", func() {
			_, err := dsf.Probe(context.Background(), Media{URL: "/videos/gone.mp4"}, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBandwidthMeter(t *testing.T) {
	Convey("Given a bandwidth meter", t, func() {
		meter := NewBandwidthMeter()

		Convey("It has no estimate before a sample", func() {
			_, ok := meter.Estimate()
			So(ok, ShouldBeFalse)
		})

		Convey("Empty samples are ignored", func() {
			meter.Sample(0, time.Second)
			meter.Sample(100, 0)
			_, ok := meter.Estimate()
			So(ok, ShouldBeFalse)
		})

		Convey("It averages over every sample", func() {
			meter.Sample(1000, time.Second)
			meter.Sample(3000, time.Second)

			bps, ok := meter.Estimate()
			So(ok, ShouldBeTrue)
			So(bps, ShouldEqual, 16000)
		})
	})
}
