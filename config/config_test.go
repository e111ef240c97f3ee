package config

import (
	"errors"
	"testing"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should default to the basename template", func() {
			_ = Setup()
			So(viper.GetString(key.FetchTemplate), ShouldEqual, "%basename%")
			So(viper.GetStringSlice(key.FetchIconMimeTypes), ShouldContain, "image/png")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("fetch.search_meta_tags")
			So(result, ShouldEqual, "fetch_search_meta_tags")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.FetchIgnoreContentType]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "FAVIGO_FETCH_IGNORE_CONTENT_TYPE")
		})

		Convey("Its type name should be reported", func() {
			So(field.typeName(), ShouldEqual, "bool")
			mimes := Default[key.FetchIconMimeTypes]
			So(mimes.typeName(), ShouldEqual, "[]string")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		_ = Setup()
		defer func() {
			for k := range rules {
				viper.Set(k, Default[k].Value)
			}
		}()

		Convey("It is valid", func() {
			So(Validate(), ShouldBeNil)
		})

		Convey("A blank output template is rejected", func() {
			viper.Set(key.FetchTemplate, "  ")

			err := Validate()
			var verr *ValueError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Key, ShouldEqual, key.FetchTemplate)
		})

		Convey("Every failure is reported", func() {
			viper.Set(key.FetchHTMLMimeTypes, []string{})
			viper.Set(key.NetworkTimeout, -1)

			err := Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.FetchHTMLMimeTypes)
			So(err.Error(), ShouldContainSubstring, key.NetworkTimeout)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given raw values for registered keys", t, func() {
		Convey("They are converted to the registered type", func() {
			v, err := Parse(key.NetworkTimeout, []string{"12"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 12)

			v, err = Parse(key.FetchSearchMetaTags, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = Parse(key.FetchHTMLMimeTypes, []string{"text/html", "text/plain"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"text/html", "text/plain"})
		})

		Convey("Malformed values are rejected", func() {
			_, err := Parse(key.NetworkTimeout, []string{"soon"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.FetchIgnoreContentType, []string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Values breaking a rule are rejected", func() {
			_, err := Parse(key.FetchIconMimeTypes, []string{"image/png", " "})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.IconsVariant, []string{"sparkles"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.LogsLevel, []string{"loud"})
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown keys and missing values are rejected", func() {
			_, err := Parse("fetch.nope", []string{"1"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.FetchTemplate, nil)
			So(err, ShouldNotBeNil)
		})
	})
}
