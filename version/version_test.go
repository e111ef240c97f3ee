package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("It orders by major, minor then patch", func() {
			So(compare("1.0.0", "0.9.9"), ShouldEqual, 1)
			So(compare("0.3.1", "0.4.0"), ShouldEqual, -1)
			So(compare("0.3.2", "0.3.1"), ShouldEqual, 1)
			So(compare("v1.2.3", "1.2.3"), ShouldEqual, 0)
		})

		Convey("It ignores pre-release and build suffixes", func() {
			So(compare("1.2.3-rc.1", "1.2.3"), ShouldEqual, 0)
			So(compare("1.2.4+abc", "1.2.3"), ShouldEqual, 1)
		})

		Convey("It rejects malformed versions", func() {
			_, err := Compare("latest", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func compare(a, b string) int {
	c, err := Compare(a, b)
	So(err, ShouldBeNil)
	return c
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		var status = http.StatusOK
		var body = `{"tag_name":"v1.4.0","name":"favigo 1.4.0"}`

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		Convey("The tag is returned without its prefix", func() {
			ver, err := fetchLatest(context.Background(), srv.Client(), srv.URL)
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.4.0")
		})

		Convey("An empty tag is an error", func() {
			body = `{}`
			_, err := fetchLatest(context.Background(), srv.Client(), srv.URL)
			So(err, ShouldNotBeNil)
		})

		Convey("A non-200 status is an error", func() {
			status = http.StatusForbidden
			_, err := fetchLatest(context.Background(), srv.Client(), srv.URL)
			So(err, ShouldNotBeNil)
		})
	})
}
