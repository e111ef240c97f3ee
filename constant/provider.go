package constant

// Icon aggregator endpoints. The hostname of the target is appended to the prefix.
const (
	DuckDuckGoPrefix = "https://icons.duckduckgo.com/ip3/"
	DuckDuckGoSuffix = ".ico"

	GooglePrefix = "https://www.google.com/s2/favicons?domain="
	GoogleSuffix = ""
)

// WellKnownFavicon is the conventional origin-relative favicon location.
const WellKnownFavicon = "/favicon.ico"
