package favicon

import "github.com/favigo/favigo/constant"

// Provider is a third-party icon aggregator keyed by hostname.
// Aggregators may answer a miss with a generic placeholder image; that cannot
// be told apart from a real icon and is accepted as a result.
type Provider struct {
	Name   string
	Prefix string
	Suffix string
}

// URL returns the provider endpoint for host.
func (p Provider) URL(host string) string {
	return p.Prefix + host + p.Suffix
}

// Default aggregators, tried in this order.
var (
	DuckDuckGo = Provider{Name: "duckduckgo", Prefix: constant.DuckDuckGoPrefix, Suffix: constant.DuckDuckGoSuffix}
	Google     = Provider{Name: "google", Prefix: constant.GooglePrefix, Suffix: constant.GoogleSuffix}
)

// DefaultProviders returns the aggregator chain used when none is configured.
func DefaultProviders() []Provider {
	return []Provider{DuckDuckGo, Google}
}
