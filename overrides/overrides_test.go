package overrides

import (
	"testing"

	"github.com/favigo/favigo/key"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestMerge(t *testing.T) {
	Convey("Given the default overrides", t, func() {
		base := Defaults()

		Convey("Everything is disabled", func() {
			So(base, ShouldResemble, Overrides{})
		})

		Convey("Merging an empty patch changes nothing", func() {
			So(base.Merge(Patch{}), ShouldResemble, base)
		})

		Convey("Merging a partial patch keeps absent fields", func() {
			merged := base.Merge(Patch{SearchMetaTags: mo.Some(true)})
			So(merged.SearchMetaTags, ShouldBeTrue)
			So(merged.IgnoreContentTypeHeader, ShouldBeFalse)
			So(merged.FileExtFromMagicNumber, ShouldBeFalse)

			again := merged.Merge(Patch{IgnoreContentTypeHeader: mo.Some(true)})
			So(again.SearchMetaTags, ShouldBeTrue)
			So(again.IgnoreContentTypeHeader, ShouldBeTrue)
		})

		Convey("Merging never mutates the receiver", func() {
			_ = base.Merge(Patch{FileExtFromContentTypeHeader: mo.Some(true)})
			So(base.FileExtFromContentTypeHeader, ShouldBeFalse)
		})

		Convey("An explicit false overrides a true", func() {
			on := base.WithMagicNumber(true)
			So(on.FileExtFromMagicNumber, ShouldBeTrue)
			So(on.WithMagicNumber(false).FileExtFromMagicNumber, ShouldBeFalse)
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("Given configured fetch keys", t, func() {
		viper.Set(key.FetchSearchMetaTags, true)
		viper.Set(key.FetchIgnoreContentType, false)
		defer viper.Set(key.FetchSearchMetaTags, false)

		ov := FromConfig()
		So(ov.SearchMetaTags, ShouldBeTrue)
		So(ov.IgnoreContentTypeHeader, ShouldBeFalse)
	})
}
