package outpath

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Given a favicon URL", t, func() {
		source := "https://example.com/favicon.png"

		Convey("Plain strings are not edited", func() {
			So(Format("out/output.png", source), ShouldEqual, "out/output.png")
		})

		Convey("%basename% is the file name", func() {
			So(Format("%basename%", source), ShouldEqual, "favicon.png")
		})

		Convey("%filestem% and %extname% recombine to the file name", func() {
			So(Format("%filestem%%extname%", source), ShouldEqual, "favicon.png")
			So(Format("%extname%%filestem%", source), ShouldEqual, ".pngfavicon")
		})

		Convey("Subdirectories can be added", func() {
			So(Format("out/output%extname%", source), ShouldEqual, "out/output.png")
		})

		Convey("Placeholders are case-insensitive and may repeat", func() {
			So(Format("%BaseName%-%FILESTEM%-%basename%", source), ShouldEqual, "favicon.png-favicon-favicon.png")
		})

		Convey("Formatting is idempotent", func() {
			once := Format("icons/%filestem%%extname%", source)
			So(Format(once, source), ShouldEqual, once)
		})

		Convey("Unknown placeholders pass through", func() {
			So(Format("%hostname%/%basename%", source), ShouldEqual, "%hostname%/favicon.png")
		})

		Convey("A lone percent sign is literal", func() {
			So(Format("100%_%basename", source), ShouldEqual, "100%_%basename")
		})
	})

	Convey("Given a URL with a query string", t, func() {
		source := "https://example.com/static/icon.ico?v=4393bde228f3"

		Convey("The query never leaks into the extension", func() {
			So(Format("%extname%", source), ShouldEqual, ".ico")
			So(Format("%basename%", source), ShouldEqual, "icon.ico")
			So(Format("%filestem%", source), ShouldEqual, "icon")
		})
	})

	Convey("Substituted text is not expanded again", t, func() {
		So(Format("%basename%", "https://example.com/%25extname%25"), ShouldEqual, "%extname%")
	})

	Convey("Given a bare origin", t, func() {
		So(Format("%basename%", "https://example.com"), ShouldEqual, "example.com")
		So(Format("%basename%", "https://example.com/"), ShouldEqual, "example.com")
		So(Format("%basename%", "https://example.com/blog/"), ShouldEqual, "blog")
		So(Format("%basename%", "http://localhost:8080"), ShouldEqual, "localhost")
	})

	Convey("Given a plain relative path", t, func() {
		So(Format("%filestem%.bak", "dir/icon.png?x=1"), ShouldEqual, "icon.bak")
	})
}

func TestExt(t *testing.T) {
	Convey("AppendExt", t, func() {
		So(AppendExt("favicon", ".ico"), ShouldEqual, "favicon.ico")
		So(AppendExt("favicon.ICO", ".ico"), ShouldEqual, "favicon.ICO")
		So(AppendExt("favicon.png", ""), ShouldEqual, "favicon.png")
	})

	Convey("ReplaceExt", t, func() {
		So(ReplaceExt("out/a.ico", ".png"), ShouldEqual, "out/a.png")
		So(ReplaceExt("out/a", ".png"), ShouldEqual, "out/a.png")
		So(ReplaceExt("out.d/a", ".png"), ShouldEqual, "out.d/a.png")
	})
}
