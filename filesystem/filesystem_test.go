package filesystem

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteStream(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("WriteStream creates parent directories", func() {
			n, err := WriteStream("out/icons/a.ico", strings.NewReader("abc"))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)

			data, err := API().ReadFile("out/icons/a.ico")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "abc")
		})

		Convey("WriteStream truncates existing files", func() {
			_, _ = WriteStream("a.ico", strings.NewReader("longer content"))
			_, err := WriteStream("a.ico", strings.NewReader("x"))
			So(err, ShouldBeNil)

			data, _ := API().ReadFile("a.ico")
			So(string(data), ShouldEqual, "x")
		})

		Convey("ReadHeader returns at most n bytes", func() {
			_, _ = WriteStream("h.bin", strings.NewReader("0123456789abcdefXYZ"))
			head, err := ReadHeader("h.bin", 16)
			So(err, ShouldBeNil)
			So(string(head), ShouldEqual, "0123456789abcdef")
		})

		Convey("ReadHeader tolerates short files", func() {
			_, _ = WriteStream("short.bin", strings.NewReader("ab"))
			head, err := ReadHeader("short.bin", 16)
			So(err, ShouldBeNil)
			So(string(head), ShouldEqual, "ab")
		})

		Convey("ReadHeader fails for missing files", func() {
			_, err := ReadHeader("missing.bin", 16)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewCache(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("A cache is persisted to the current backend", func() {
			cache := NewCache[[]string]("cache/targets.json", 0)
			So(cache.Set([]string{"https://example.com"}), ShouldBeNil)

			exists, err := API().Exists("cache/targets.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)

			value, expired, err := cache.Get()
			So(err, ShouldBeNil)
			So(expired, ShouldBeFalse)
			So(value, ShouldResemble, []string{"https://example.com"})
		})

		Convey("A later cache over the same file reads what was stored", func() {
			So(NewCache[string]("cache/version.json", time.Hour).Set("1.2.3"), ShouldBeNil)

			value, expired, err := NewCache[string]("cache/version.json", time.Hour).Get()
			So(err, ShouldBeNil)
			So(expired, ShouldBeFalse)
			So(value, ShouldEqual, "1.2.3")
		})
	})
}
