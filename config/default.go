// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/style"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Favigo + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.FetchTemplate, "%basename%", "Output path template.\nPlaceholders: %basename%, %filestem%, %extname% (case-insensitive)")
	register(key.FetchExtFromContentType, false, "Append the extension inferred from the response Content-Type header")
	register(key.FetchExtFromMagicNumber, false, "Rename the saved file according to its leading byte signature")
	register(key.FetchIgnoreContentType, false, "Skip Content-Type validation of responses entirely")
	register(key.FetchSearchMetaTags, false, "Also look for icon references in <meta> content attributes")
	register(key.FetchIconMimeTypes, []string{
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
	}, "Accepted Content-Type substrings for icon responses")
	register(key.FetchHTMLMimeTypes, []string{"text/html", "application/xhtml+xml"}, "Accepted Content-Type substrings for web pages")
	register(key.FetchMaxHTMLBytes, 5<<20, "Maximum number of bytes read from a web page when looking for icon references")
	register(key.FetchHTMLTokenizer, false, "Find icon references with an HTML tokenizer instead of pattern matching.\nSlower, but copes with unquoted attributes")
	register(key.NetworkTimeout, 30, "HTTP request timeout in seconds")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent with every request")
	register(key.NetworkTLSFingerprint, false, "Use a browser-like TLS fingerprint for https requests.\nHelps with sites behind bot protection")
	register(key.HistorySave, true, "Remember fetched targets for shell completion suggestions")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsDebug, false, "Print debug diagnostics to stderr.\nRead once at startup")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.CliOpenWith, "", "Application used by --open to show the saved icon.\nEmpty means the system default handler")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"wrap":     func(s string) string { return wordwrap.String(s, 80) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint (wrap .Description) }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
