package extract

import (
	"errors"
	"testing"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/overrides"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const testURL = "https://example.com"

var linkHrefs = []string{
	"/favicon.ico?v=4393bde228f3",
	"/favicon-16x16.png?v=50d5f3028f70",
	"/favicon-32x32.png?v=2b275943c6da",
	"https://cheatsheet.denperidge.com/favicon-48x48.png?v=92136164553a",
	"apple-touch-icon-180x180.png?v=97bbefd73032",
	"/apple-touch-startup-image-2388x1668.PNG?v=764b5e666b7a",
}

var metaHrefs = []string{
	"/mstile-144x144.png?v=e4e6e8b9a2c1",
	"https://cheatsheet.denperidge.com/og.jpg",
}

func readPage() string {
	filesystem.SetOsFs()
	return string(lo.Must(filesystem.API().ReadFile("testdata/page.html")))
}

func TestFavicons(t *testing.T) {
	Convey("Given a page with link and meta icon references", t, func() {
		page := readPage()

		Convey("Without meta scanning only link tags are returned, in document order", func() {
			hrefs, err := Favicons(page, mo.None[string](), overrides.Defaults())
			So(err, ShouldBeNil)
			So(hrefs, ShouldResemble, linkHrefs)
		})

		Convey("With meta scanning meta results follow every link result", func() {
			ov := overrides.Defaults()
			ov.SearchMetaTags = true

			hrefs, err := Favicons(page, mo.None[string](), ov)
			So(err, ShouldBeNil)
			So(hrefs, ShouldResemble, append(append([]string{}, linkHrefs...), metaHrefs...))
		})

		Convey("With a base URL relative references are resolved", func() {
			hrefs, err := Favicons(page, mo.Some(testURL), overrides.Defaults())
			So(err, ShouldBeNil)
			So(hrefs, ShouldHaveLength, len(linkHrefs))
			So(hrefs[0], ShouldEqual, testURL+"/favicon.ico?v=4393bde228f3")
			So(hrefs[3], ShouldEqual, linkHrefs[3])
			So(hrefs[4], ShouldEqual, testURL+"/apple-touch-icon-180x180.png?v=97bbefd73032")
		})
	})

	Convey("Given meta tags interleaved with link tags", t, func() {
		page := `<link rel="icon" href="/a.png"><meta name="og:image" content="/m.jpg"><link rel="icon" href="/b.jpeg">`
		ov := overrides.Defaults()
		ov.SearchMetaTags = true

		scanners := []struct {
			name string
			scan Scanner
		}{{"pattern", Favicons}, {"tokenizer", Tokenized}}

		for _, sc := range scanners {
			Convey("The "+sc.name+" scan returns every link before any meta", func() {
				hrefs, err := sc.scan(page, mo.None[string](), ov)
				So(err, ShouldBeNil)
				So(hrefs, ShouldResemble, []string{"/a.png", "/b.jpeg", "/m.jpg"})
			})
		}
	})

	Convey("Given a page without icons", t, func() {
		hrefs, err := Favicons(`<html><head><link rel="stylesheet" href="a.css"></head></html>`, mo.Some(testURL), overrides.Defaults())

		Convey("An empty list is returned without error", func() {
			So(err, ShouldBeNil)
			So(hrefs, ShouldBeEmpty)
		})
	})

	Convey("Given adjacent tags", t, func() {
		page := `<link rel="stylesheet" href="a.css"><link rel="icon" href="/f.ico">`

		Convey("A non icon tag does not swallow the next one", func() {
			hrefs, err := Favicons(page, mo.None[string](), overrides.Defaults())
			So(err, ShouldBeNil)
			So(hrefs, ShouldResemble, []string{"/f.ico"})
		})
	})

	Convey("Given escaped attribute values", t, func() {
		page := `<link rel='icon' href='/f.png?a=1&amp;b=2'>`

		Convey("Entities are decoded", func() {
			hrefs, _ := Favicons(page, mo.None[string](), overrides.Defaults())
			So(hrefs, ShouldResemble, []string{"/f.png?a=1&b=2"})
		})
	})

	Convey("The failure marker is distinguishable", t, func() {
		var marker error = &Error{Cause: "boom"}
		var target *Error
		So(errors.As(marker, &target), ShouldBeTrue)
		So(marker.Error(), ShouldContainSubstring, "boom")
	})
}

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		So(Resolve("/favicon.ico", testURL), ShouldEqual, "https://example.com/favicon.ico")
		So(Resolve("icon.png", testURL), ShouldEqual, "https://example.com/icon.png")
		So(Resolve("https://cdn.example.org/i.png", testURL), ShouldEqual, "https://cdn.example.org/i.png")
		So(Resolve("//cdn.example.org/i.png", testURL), ShouldEqual, "https://cdn.example.org/i.png")
	})

	Convey("Given a page below the site root", t, func() {
		page := "https://example.com/docs/?lang=en#top"

		Convey("Relative references stay under the page", func() {
			So(Resolve("icon.png", page), ShouldEqual, "https://example.com/docs/icon.png")
			So(Resolve("img/icon.png", "https://example.com/docs"), ShouldEqual, "https://example.com/docs/img/icon.png")
		})

		Convey("Root-relative references use the origin", func() {
			So(Resolve("/favicon.ico", page), ShouldEqual, "https://example.com/favicon.ico")
			So(Resolve("/favicon.ico", "http://127.0.0.1:8080/a/b"), ShouldEqual, "http://127.0.0.1:8080/favicon.ico")
		})

		Convey("Protocol-relative references borrow the scheme", func() {
			So(Resolve("//cdn.example.org/i.png", "http://example.com/docs/"), ShouldEqual, "http://cdn.example.org/i.png")
		})
	})
}
