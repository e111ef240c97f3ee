package query

import (
	"testing"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given target history", t, func() {
		viper.Set(key.HistorySave, true)

		Convey("When remembering targets", func() {
			So(Remember("https://golang.org/", 1), ShouldBeNil)
			So(Remember("github.com", 10), ShouldBeNil)
			So(Remember("gitlab.com", 3), ShouldBeNil)

			Convey("Suggestions are sorted by rank", func() {
				s := SuggestMany("git")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "github.com")
				So(s[1], ShouldEqual, "gitlab.com")
			})

			Convey("The default scheme is not part of the record", func() {
				So(Suggest("golang").OrEmpty(), ShouldEqual, "golang.org")
			})

			Convey("Matching ignores case", func() {
				So(SuggestMany("GITHUB"), ShouldContain, "github.com")
			})
		})

		Convey("Nothing is remembered or suggested when disabled", func() {
			viper.Set(key.HistorySave, false)
			So(Remember("example.org", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldBeEmpty)

			viper.Set(key.HistorySave, true)
			So(SuggestMany("example.org"), ShouldNotContain, "example.org")
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("normalize", t, func() {
		So(normalize("  https://example.com/ "), ShouldEqual, "example.com")
		So(normalize("http://example.com"), ShouldEqual, "http://example.com")
	})
}
