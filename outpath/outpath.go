// Package outpath renders output path templates against a source reference.
//
// A template may contain any number of the placeholders below, in any case:
//
//	%basename%  file name with extension       (favicon.png)
//	%filestem%  file name without extension    (favicon)
//	%extname%   extension with the leading dot (.png)
//
// Anything else in the template is copied verbatim.
package outpath

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`(?i)%(basename|filestem|extname)%`)

// Format substitutes every placeholder in template with the matching
// component of source in a single pass.
func Format(template, source string) string {
	base, stem, ext := Components(source)

	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		switch strings.ToLower(match) {
		case "%basename%":
			return base
		case "%filestem%":
			return stem
		default:
			return ext
		}
	})
}

// Components splits the path portion of source into basename, stem and extension.
// Query strings and fragments never contribute. If the path is empty the host,
// without port, stands in for the basename.
func Components(source string) (base, stem, ext string) {
	p := pathOf(source)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "", "", ""
	}

	base = path.Base(p)
	ext = path.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	return base, stem, ext
}

func pathOf(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		if i := strings.IndexAny(source, "?#"); i >= 0 {
			source = source[:i]
		}
		return source
	}

	if u.Host != "" {
		return u.Hostname() + u.Path
	}
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Path
}

// AppendExt adds ext to p unless p already ends with it.
func AppendExt(p, ext string) string {
	if ext == "" || strings.HasSuffix(strings.ToLower(p), strings.ToLower(ext)) {
		return p
	}
	return p + ext
}

// ReplaceExt swaps the trailing extension of the last path element for ext,
// or appends ext when there is none.
func ReplaceExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}
