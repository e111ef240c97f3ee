// Package negotiator performs single validated HTTP GETs.
//
// Every download made while resolving a favicon passes through Fetch, which
// rejects error statuses and, unless told otherwise, responses whose declared
// Content-Type is not on the caller's allow-list.
package negotiator

import (
	"context"
	"net/http"
	"strings"

	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/overrides"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Default allow-lists. Matching is by case-insensitive substring.
var (
	IconMimeTypes = []string{
		"image/x-icon",
		"image/vnd.microsoft.icon",
		"image/ico",
		"image/icon",
		"image/png",
		"image/jpeg",
		"image/jpg",
		"image/gif",
		"image/svg+xml",
		"image/webp",
	}
	HTMLMimeTypes = []string{"text/html", "application/xhtml+xml"}
)

// IconMimeTypesFromConfig returns the configured icon allow-list, or the default one.
func IconMimeTypesFromConfig() []string {
	if list := viper.GetStringSlice(key.FetchIconMimeTypes); len(list) > 0 {
		return list
	}
	return IconMimeTypes
}

// HTMLMimeTypesFromConfig returns the configured page allow-list, or the default one.
func HTMLMimeTypesFromConfig() []string {
	if list := viper.GetStringSlice(key.FetchHTMLMimeTypes); len(list) > 0 {
		return list
	}
	return HTMLMimeTypes
}

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Negotiator validates responses obtained through its Doer.
type Negotiator struct {
	client    Doer
	userAgent string
}

// New returns a Negotiator sending requests through client.
// An empty userAgent falls back to constant.UserAgent.
func New(client Doer, userAgent string) *Negotiator {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = constant.UserAgent
	}
	return &Negotiator{client: client, userAgent: userAgent}
}

// Fetch issues a GET for rawURL and returns the response when its status is
// below 400 and, unless ov.IgnoreContentTypeHeader is set, its Content-Type
// contains one of allowed. The caller owns the returned body.
func (n *Negotiator) Fetch(ctx context.Context, rawURL string, allowed []string, ov overrides.Overrides) (*http.Response, error) {
	if len(allowed) == 0 {
		return nil, ErrNoAllowList
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", strings.Join(allowed, ", ")+", */*;q=0.8")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		_ = resp.Body.Close()
		return nil, &HTTPError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if !ov.IgnoreContentTypeHeader {
		contentType := resp.Header.Get("Content-Type")
		if !Accepts(contentType, allowed) {
			_ = resp.Body.Close()
			return nil, &ValidationError{URL: rawURL, ContentType: contentType, Allowed: allowed}
		}
	}

	return resp, nil
}

// Accepts reports whether contentType contains any of allowed, ignoring case.
func Accepts(contentType string, allowed []string) bool {
	contentType = strings.ToLower(contentType)
	return lo.ContainsBy(allowed, func(a string) bool {
		return a != "" && strings.Contains(contentType, strings.ToLower(a))
	})
}

var extensions = []lo.Tuple2[string, string]{
	{A: "image/x-icon", B: ".ico"},
	{A: "image/vnd.microsoft.icon", B: ".ico"},
	{A: "image/ico", B: ".ico"},
	{A: "image/icon", B: ".ico"},
	{A: "image/png", B: ".png"},
	{A: "image/jpeg", B: ".jpg"},
	{A: "image/jpg", B: ".jpg"},
	{A: "image/gif", B: ".gif"},
	{A: "image/svg+xml", B: ".svg"},
	{A: "image/webp", B: ".webp"},
}

// ExtensionFor maps a Content-Type header value to a file extension.
func ExtensionFor(contentType string) mo.Option[string] {
	contentType = strings.ToLower(contentType)
	for _, e := range extensions {
		if strings.Contains(contentType, e.A) {
			return mo.Some(e.B)
		}
	}
	return mo.None[string]()
}
