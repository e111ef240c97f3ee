package extract

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/favigo/favigo/overrides"
	"github.com/samber/mo"
	"golang.org/x/net/html"
)

var iconRef = regexp.MustCompile(`(?i)\.(?:ico|png|jpe?g)(?:[?#].*)?$`)

// Tokenized is Favicons on top of an HTML tokenizer. Ordering, filtering and
// base resolution are the same.
func Tokenized(document string, base mo.Option[string], ov overrides.Overrides) (hrefs []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			hrefs, err = nil, &Error{Cause: r}
		}
	}()

	var links, metas []string
	z := html.NewTokenizer(strings.NewReader(document))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, &Error{Cause: z.Err()}
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if !hasAttr {
			continue
		}

		switch string(name) {
		case "link":
			if v, ok := iconAttr(z, "href"); ok {
				links = append(links, v)
			}
		case "meta":
			if !ov.SearchMetaTags {
				continue
			}
			if v, ok := iconAttr(z, "content"); ok {
				metas = append(metas, v)
			}
		}
	}

	return resolveAll(append(links, metas...), base), nil
}

// iconAttr returns the value of the attribute want when it looks like an icon reference.
func iconAttr(z *html.Tokenizer, want string) (string, bool) {
	for {
		k, v, more := z.TagAttr()
		if string(k) == want {
			value := strings.TrimSpace(string(v))
			return value, value != "" && iconRef.MatchString(value)
		}
		if !more {
			return "", false
		}
	}
}
