// Package icon renders status symbols in the variant chosen by icons.variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/favigo/favigo/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Link
	Image
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "\uf00d",
		plain:   "✗",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "\uf071",
		plain:   "!",
		kaomoji: "(・・;)",
		squares: "🟨",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "\uf0c1",
		plain:   "→",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟪",
	},
	Image: {
		emoji:   "🖼️",
		nerd:    "\uf03e",
		plain:   "#",
		kaomoji: "(⌐■_■)",
		squares: "🟧",
	},
}

// Get renders d in the configured variant. Unknown variants render empty.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.Get()
	}
	return ""
}
