// Package overrides holds the per-call switches that alter how a favicon is acquired.
package overrides

import (
	"github.com/favigo/favigo/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Overrides is an immutable set of acquisition switches. All default to false.
type Overrides struct {
	// FileExtFromContentTypeHeader appends the extension inferred from the response MIME type.
	FileExtFromContentTypeHeader bool `json:"fileExtFromContentTypeHeader"`
	// FileExtFromMagicNumber renames the saved file after sniffing its byte signature.
	FileExtFromMagicNumber bool `json:"fileExtFromMagicNumber"`
	// IgnoreContentTypeHeader skips MIME validation entirely.
	IgnoreContentTypeHeader bool `json:"ignoreContentTypeHeader"`
	// SearchMetaTags also scans <meta> content attributes for icon references.
	SearchMetaTags bool `json:"searchMetaTags"`
}

// Patch lists caller supplied values. Absent fields keep whatever they are merged onto.
type Patch struct {
	FileExtFromContentTypeHeader mo.Option[bool]
	FileExtFromMagicNumber       mo.Option[bool]
	IgnoreContentTypeHeader      mo.Option[bool]
	SearchMetaTags               mo.Option[bool]
}

// Defaults returns the zero configuration.
func Defaults() Overrides {
	return Overrides{}
}

// Merge overlays the present fields of p on a copy of o.
func (o Overrides) Merge(p Patch) Overrides {
	o.FileExtFromContentTypeHeader = p.FileExtFromContentTypeHeader.OrElse(o.FileExtFromContentTypeHeader)
	o.FileExtFromMagicNumber = p.FileExtFromMagicNumber.OrElse(o.FileExtFromMagicNumber)
	o.IgnoreContentTypeHeader = p.IgnoreContentTypeHeader.OrElse(o.IgnoreContentTypeHeader)
	o.SearchMetaTags = p.SearchMetaTags.OrElse(o.SearchMetaTags)
	return o
}

// WithMagicNumber returns a copy with FileExtFromMagicNumber set.
func (o Overrides) WithMagicNumber(enabled bool) Overrides {
	return o.Merge(Patch{FileExtFromMagicNumber: mo.Some(enabled)})
}

// FromConfig reads overrides from the fetch.* configuration keys.
func FromConfig() Overrides {
	return Defaults().Merge(Patch{
		FileExtFromContentTypeHeader: mo.Some(viper.GetBool(key.FetchExtFromContentType)),
		FileExtFromMagicNumber:       mo.Some(viper.GetBool(key.FetchExtFromMagicNumber)),
		IgnoreContentTypeHeader:      mo.Some(viper.GetBool(key.FetchIgnoreContentType)),
		SearchMetaTags:               mo.Some(viper.GetBool(key.FetchSearchMetaTags)),
	})
}
