package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server echoing the user agent", t, func() {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.UserAgent()
		}))
		Reset(srv.Close)

		Convey("Requests carry the configured user agent", func() {
			resp, err := NewClient("PlaycheckPlaybackTests/test").Get(srv.URL)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(got, ShouldEqual, "PlaycheckPlaybackTests/test")
		})

		Convey("An explicit user agent wins", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := NewClient("PlaycheckPlaybackTests/test").Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(got, ShouldEqual, "custom")
		})
	})
}
