package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Orders by major, minor then patch", func() {
			cases := []struct {
				a, b string
				want int
			}{
				{"1.0.0", "0.9.9", 1},
				{"0.1.0", "0.1.1", -1},
				{"v0.2.0", "0.2.0", 0},
				{"2.0.0", "10.0.0", -1},
				{"0.4", "0.4.0", 0},
				{"1.2.0-rc1", "1.1.9", 1},
			}

			for _, c := range cases {
				got, err := Compare(c.a, c.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("Rejects malformed versions", func() {
			_, err := Compare("latest", "0.1.0")
			So(err, ShouldNotBeNil)

			_, err = Compare("0.1.0", "1.2.3.4")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		status, body := http.StatusOK, `{"tag_name": "v0.3.1"}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		previous := releasesAPI
		releasesAPI = server.URL
		defer func() { releasesAPI = previous }()

		Convey("The tag is returned without its prefix", func() {
			ver, err := fetchLatest(server.Client())
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "0.3.1")
		})

		Convey("An empty tag is an error", func() {
			body = `{}`
			_, err := fetchLatest(server.Client())
			So(err, ShouldNotBeNil)
		})

		Convey("A non-OK status is an error", func() {
			status = http.StatusNotFound
			_, err := fetchLatest(server.Client())
			So(err, ShouldNotBeNil)
		})
	})
}
