// Package favicon resolves a website's favicon to a local file.
//
// Strategies are tried in a fixed order and the first success wins:
//
//  1. direct      the target already names a file (its path has an extension)
//  2. origin      <origin>/favicon.ico
//  3. html        the first icon referenced by the target page
//  4. duckduckgo  icon aggregator
//  5. google      icon aggregator
//
// A target naming a file only ever runs the direct strategy. Any path with
// an extension counts, so https://host/page.com is treated as a file. The
// chain is sequential and nothing is retried.
package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/extract"
	"github.com/favigo/favigo/log"
	"github.com/favigo/favigo/negotiator"
	"github.com/favigo/favigo/network"
	"github.com/favigo/favigo/overrides"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Strategy names as they appear in a Report.
const (
	StrategyDirect = "direct"
	StrategyOrigin = "origin"
	StrategyHTML   = "html"
)

// DefaultMaxHTMLBytes caps how much of a page is scanned for icon references.
const DefaultMaxHTMLBytes = 5 << 20

// Resolver runs the fallback chain. It holds no per-call state and is safe
// for concurrent use as long as callers use distinct output paths.
type Resolver struct {
	negotiator   *negotiator.Negotiator
	providers    []Provider
	overrides    overrides.Overrides
	logger       log.Logger
	iconTypes    []string
	htmlTypes    []string
	maxHTMLBytes int64
	scanner      extract.Scanner
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNegotiator sets the negotiator every download goes through.
func WithNegotiator(n *negotiator.Negotiator) Option {
	return func(r *Resolver) { r.negotiator = n }
}

// WithProviders replaces the aggregator chain.
func WithProviders(providers ...Provider) Option {
	return func(r *Resolver) { r.providers = providers }
}

// WithOverrides sets the overrides applied to every call.
func WithOverrides(ov overrides.Overrides) Option {
	return func(r *Resolver) { r.overrides = ov }
}

// WithLogger sets the diagnostic sink.
func WithLogger(l log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMimeTypes sets the icon and page allow-lists. Empty lists keep the defaults.
func WithMimeTypes(icon, html []string) Option {
	return func(r *Resolver) {
		if len(icon) > 0 {
			r.iconTypes = icon
		}
		if len(html) > 0 {
			r.htmlTypes = html
		}
	}
}

// WithScanner sets how pages are searched for icon references.
func WithScanner(scan extract.Scanner) Option {
	return func(r *Resolver) {
		if scan != nil {
			r.scanner = scan
		}
	}
}

// WithMaxHTMLBytes caps the number of page bytes scanned.
func WithMaxHTMLBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxHTMLBytes = n
		}
	}
}

// New returns a Resolver with the default providers, allow-lists and a
// no-op logger, modified by opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		negotiator:   negotiator.New(network.Client, constant.UserAgent),
		providers:    DefaultProviders(),
		overrides:    overrides.Defaults(),
		logger:       log.Nop,
		iconTypes:    negotiator.IconMimeTypes,
		htmlTypes:    negotiator.HTMLMimeTypes,
		maxHTMLBytes: DefaultMaxHTMLBytes,
		scanner:      extract.Favicons,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Attempt records one strategy run.
type Attempt struct {
	Strategy string `json:"strategy"`
	URL      string `json:"url"`
	Error    string `json:"error,omitempty"`
}

// Report describes a resolution.
type Report struct {
	Target   string    `json:"target"`
	Path     string    `json:"path,omitempty"`
	Strategy string    `json:"strategy,omitempty"`
	Attempts []Attempt `json:"attempts"`
}

// Resolve saves the favicon of target under template and returns the local path.
func (r *Resolver) Resolve(ctx context.Context, target, template string) (string, error) {
	report, err := r.ResolveReport(ctx, target, template)
	if err != nil {
		return "", err
	}
	return report.Path, nil
}

// ResolveReport is Resolve, also describing every strategy that ran.
// The report is returned even on failure.
func (r *Resolver) ResolveReport(ctx context.Context, target, template string) (*Report, error) {
	u, err := ParseTarget(target)
	if err != nil {
		return &Report{Target: target}, err
	}

	c := &call{Resolver: r, report: &Report{Target: u.String()}}

	path, err := c.resolve(ctx, u, template, r.overrides, false).Get()
	if err != nil {
		return c.report, &ExhaustedError{Target: u.String(), Attempts: c.report.Attempts, Last: err}
	}

	r.logger.Infof("saved favicon of %s to %s via %s", u, path, c.report.Strategy)
	return c.report, nil
}

// ParseTarget validates target as an absolute http or https URL.
func ParseTarget(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, &InputError{Target: target, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &InputError{Target: target, Err: errors.New("scheme must be http or https")}
	}
	if u.Host == "" {
		return nil, &InputError{Target: target, Err: errors.New("missing host")}
	}
	return u, nil
}

// strategyFunc is the uniform shape of every step in the chain.
type strategyFunc func(ctx context.Context, target *url.URL, template string, ov overrides.Overrides) mo.Result[string]

type strategy struct {
	name   string
	source func(target *url.URL) string
	run    strategyFunc
}

// call carries the state of a single resolution.
type call struct {
	*Resolver
	report *Report
	prefix string
}

func (c *call) strategies(target *url.URL, nested bool) []strategy {
	if path.Ext(target.Path) != "" {
		return []strategy{{name: StrategyDirect, source: (*url.URL).String, run: c.direct}}
	}

	chain := []strategy{{name: StrategyOrigin, source: originFavicon, run: c.origin}}
	if nested {
		return chain
	}

	chain = append(chain, strategy{name: StrategyHTML, source: (*url.URL).String, run: c.html})
	for _, p := range c.providers {
		chain = append(chain, strategy{
			name:   p.Name,
			source: func(u *url.URL) string { return p.URL(u.Hostname()) },
			run:    c.provider(p),
		})
	}
	return chain
}

func (c *call) resolve(ctx context.Context, target *url.URL, template string, ov overrides.Overrides, nested bool) mo.Result[string] {
	var last error

	for _, s := range c.strategies(target, nested) {
		if err := ctx.Err(); err != nil {
			return mo.Err[string](err)
		}

		name := c.prefix + s.name
		source := s.source(target)
		c.logger.Debugf("trying %s: %s", name, source)

		path, err := s.run(ctx, target, template, ov).Get()
		attempt := Attempt{Strategy: name, URL: source}
		if err == nil {
			c.report.Attempts = append(c.report.Attempts, attempt)
			c.report.Path = path
			// a nested success already named the step that produced the file
			if c.report.Strategy == "" {
				c.report.Strategy = name
			}
			return mo.Ok(path)
		}

		c.logger.Debugf("%s failed: %v", name, err)
		attempt.Error = err.Error()
		c.report.Attempts = append(c.report.Attempts, attempt)
		last = err
	}

	return mo.Err[string](last)
}

func (c *call) direct(ctx context.Context, target *url.URL, template string, ov overrides.Overrides) mo.Result[string] {
	return c.save(ctx, target.String(), target.String(), template, ov)
}

func (c *call) origin(ctx context.Context, target *url.URL, template string, ov overrides.Overrides) mo.Result[string] {
	fav := originFavicon(target)
	return c.save(ctx, fav, fav, template, ov)
}

func (c *call) html(ctx context.Context, target *url.URL, template string, ov overrides.Overrides) mo.Result[string] {
	resp, err := c.negotiator.Fetch(ctx, target.String(), c.htmlTypes, ov)
	if err != nil {
		return mo.Err[string](err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxHTMLBytes))
	if err != nil {
		return mo.Err[string](fmt.Errorf("read %s: %w", target, err))
	}

	hrefs, err := c.scanner(string(body), mo.Some(target.String()), ov)
	if err != nil {
		return mo.Err[string](err)
	}
	if len(hrefs) == 0 {
		return mo.Err[string](ErrNoReferences)
	}

	c.logger.Debugf("found %d icon references in %s, using %s", len(hrefs), target, hrefs[0])

	ref, err := ParseTarget(hrefs[0])
	if err != nil {
		return mo.Err[string](err)
	}

	prefix := c.prefix
	c.prefix = prefix + StrategyHTML + ":"
	defer func() { c.prefix = prefix }()

	return c.resolve(ctx, ref, template, ov, true)
}

// provider output paths are rendered from the original target, and the
// declared content type of aggregators is unreliable, so signatures are
// always sniffed.
func (c *call) provider(p Provider) strategyFunc {
	return func(ctx context.Context, target *url.URL, template string, ov overrides.Overrides) mo.Result[string] {
		return c.save(ctx, p.URL(target.Hostname()), target.String(), template, ov.WithMagicNumber(true))
	}
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

func originFavicon(u *url.URL) string {
	return origin(u) + constant.WellKnownFavicon
}

// Providers returns the names of the configured aggregators, in order.
func (r *Resolver) Providers() []string {
	return lo.Map(r.providers, func(p Provider, _ int) string { return p.Name })
}
