// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Acquisition - these keys control how favicons are fetched, validated and named.
const (
	FetchTemplate           = "fetch.template"
	FetchExtFromContentType = "fetch.ext_from_content_type"
	FetchExtFromMagicNumber = "fetch.ext_from_magic_number"
	FetchIgnoreContentType  = "fetch.ignore_content_type"
	FetchSearchMetaTags     = "fetch.search_meta_tags"
	FetchIconMimeTypes      = "fetch.icon_mime_types"
	FetchHTMLMimeTypes      = "fetch.html_mime_types"
	FetchMaxHTMLBytes       = "fetch.max_html_bytes"
	FetchHTMLTokenizer      = "fetch.html_tokenizer"
)

// Network - these keys tune the HTTP transport.
const (
	NetworkTimeout        = "network.timeout"
	NetworkUserAgent      = "network.user_agent"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Target History - these keys configure the persistence of previously fetched targets.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
	LogsDebug = "logs.debug"
)

// CLI Execution Environment - these flags and settings govern the CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	CliOpenWith     = "cli.open_with"
)
