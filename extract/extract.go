// Package extract finds favicon references in HTML documents.
//
// Favicons scans with patterns rather than a full HTML parse, so unquoted
// attribute values and values containing '>' are not recognised. Tokenized
// walks the document with an HTML tokenizer instead and has no such gaps.
package extract

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/favigo/favigo/overrides"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const iconValue = `["']([^"'>]*?\.(?:ico|png|jpe?g)(?:[?#][^"'>]*)?)["']`

var (
	linkPattern = regexp.MustCompile(`(?i)<link\b[^>]*?\shref\s*=\s*` + iconValue + `[^>]*>`)
	metaPattern = regexp.MustCompile(`(?i)<meta\b[^>]*?\scontent\s*=\s*` + iconValue + `[^>]*>`)
)

// Error marks a scan that broke, as opposed to one that found nothing.
type Error struct {
	Cause any
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract favicons: %v", e.Cause)
}

// Favicons returns icon references found in document, link tags first and
// then, with ov.SearchMetaTags, meta tags. Each group keeps document order.
// When base is present relative references are resolved against it.
func Favicons(document string, base mo.Option[string], ov overrides.Overrides) (hrefs []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			hrefs, err = nil, &Error{Cause: r}
		}
	}()

	hrefs = scan(linkPattern, document)
	if ov.SearchMetaTags {
		hrefs = append(hrefs, scan(metaPattern, document)...)
	}

	return resolveAll(hrefs, base), nil
}

// Scanner is the signature shared by Favicons and Tokenized.
type Scanner func(document string, base mo.Option[string], ov overrides.Overrides) ([]string, error)

func resolveAll(hrefs []string, base mo.Option[string]) []string {
	b, ok := base.Get()
	if !ok {
		return hrefs
	}
	return lo.Map(hrefs, func(href string, _ int) string {
		return Resolve(href, b)
	})
}

func scan(pattern *regexp.Regexp, document string) []string {
	matches := pattern.FindAllStringSubmatch(document, -1)
	return lo.Map(matches, func(m []string, _ int) string {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	})
}

// Resolve joins href onto base, the URL of the page href was found on.
// Absolute references are returned unchanged and protocol-relative ones borrow
// the scheme of base. Root-relative references are appended to the origin of
// base, anything else to base itself, without its query or fragment, with a
// separating slash.
func Resolve(href, base string) string {
	switch {
	case strings.Contains(href, "://"):
		return href
	case strings.HasPrefix(href, "//"):
		if scheme, _, ok := strings.Cut(base, "://"); ok {
			return scheme + ":" + href
		}
		return href
	case strings.HasPrefix(href, "/"):
		return originOf(base) + href
	default:
		return strings.TrimRight(withoutQuery(base), "/") + "/" + href
	}
}

func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return strings.TrimRight(withoutQuery(base), "/")
	}
	return u.Scheme + "://" + u.Host
}

func withoutQuery(base string) string {
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		return base[:i]
	}
	return base
}
