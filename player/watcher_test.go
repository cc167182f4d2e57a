package player

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type change struct {
	name string
	data interface{}
}

func TestWatcher(t *testing.T) {
	Convey("Given a watcher on an in-memory connection", t, func() {
		client, server := net.Pipe()

		lines := make(chan []byte, len(observedProperties))
		go func() {
			scanner := bufio.NewScanner(server)
			for i := 0; i < len(observedProperties) && scanner.Scan(); i++ {
				lines <- append([]byte(nil), scanner.Bytes()...)
			}
			close(lines)
		}()

		changes := make(chan change, 4)
		w, err := startWatcher(client, func(name string, data interface{}, _ map[string]interface{}) {
			changes <- change{name: name, data: data}
		})
		So(err, ShouldBeNil)
		Reset(func() {
			w.stop()
			server.Close()
		})

		Convey("Every property is observed with its own request", func() {
			var requests []ipcRequest
			for line := range lines {
				var req ipcRequest
				So(json.Unmarshal(line, &req), ShouldBeNil)
				requests = append(requests, req)
			}

			So(requests, ShouldHaveLength, len(observedProperties))
			for i, req := range requests {
				So(req.RequestID, ShouldBeGreaterThan, 0)
				So(req.Command, ShouldResemble, []interface{}{"observe_property", float64(i + 1), observedProperties[i]})
			}

			Convey("Property changes reach the callback and replies do not", func() {
				_, err := server.Write([]byte("{\"data\":null,\"error\":\"success\",\"request_id\":1}\n" +
					"{\"event\":\"property-change\",\"id\":1,\"name\":\"pause\",\"data\":true}\n"))
				So(err, ShouldBeNil)

				got := <-changes
				So(got.name, ShouldEqual, "pause")
				So(got.data, ShouldEqual, true)
			})
		})
	})
}
