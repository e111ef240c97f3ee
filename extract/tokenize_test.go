package extract

import (
	"testing"

	"github.com/favigo/favigo/overrides"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenized(t *testing.T) {
	Convey("Given the same page as the pattern scan", t, func() {
		page := readPage()

		Convey("Both scanners agree", func() {
			ov := overrides.Defaults()
			for _, meta := range []bool{false, true} {
				ov.SearchMetaTags = meta

				want, err := Favicons(page, mo.Some(testURL), ov)
				So(err, ShouldBeNil)

				got, err := Tokenized(page, mo.Some(testURL), ov)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, want)
			}
		})
	})

	Convey("Given markup the pattern scan cannot read", t, func() {
		page := `<HEAD>
<LINK REL=icon HREF=/unquoted.ico>
<link rel="icon" href="/weird>name.png">
<link rel="icon" href="/not-an-icon.svg">
<meta content=/tile.PNG name=msapplication-TileImage>
</HEAD>`

		Convey("Unquoted and '>'-containing values are found", func() {
			hrefs, err := Tokenized(page, mo.None[string](), overrides.Defaults())
			So(err, ShouldBeNil)
			So(hrefs, ShouldResemble, []string{"/unquoted.ico", "/weird>name.png"})
		})

		Convey("Meta tags still require the override", func() {
			ov := overrides.Defaults()
			ov.SearchMetaTags = true

			hrefs, err := Tokenized(page, mo.None[string](), ov)
			So(err, ShouldBeNil)
			So(hrefs, ShouldResemble, []string{"/unquoted.ico", "/weird>name.png", "/tile.PNG"})
		})
	})

	Convey("Given a page without icons", t, func() {
		hrefs, err := Tokenized(`<p>nothing here</p>`, mo.Some(testURL), overrides.Defaults())
		So(err, ShouldBeNil)
		So(hrefs, ShouldBeEmpty)
	})

	Convey("Entities are decoded by the tokenizer", t, func() {
		hrefs, _ := Tokenized(`<link rel='icon' href='/f.png?a=1&amp;b=2'>`, mo.None[string](), overrides.Defaults())
		So(hrefs, ShouldResemble, []string{"/f.png?a=1&b=2"})
	})
}
