// Package icon renders the symbols printed next to CLI messages and in the status view.
// The variant is picked with the icons.variant config key.
package icon

import (
	"github.com/playcheck-cli/playcheck/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Variant is a family of glyphs.
type Variant string

const (
	Plain   Variant = "plain"
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Plain, Emoji, Nerd, Kaomoji, Squares}

// AvailableVariants returns the names accepted by icons.variant.
func AvailableVariants() []string {
	return lo.Map(variants, func(v Variant, _ int) string {
		return string(v)
	})
}

// glyphs holds one icon in every variant.
type glyphs map[Variant]string

// Get renders i in the configured variant, or returns "" for an unknown variant.
func Get(i Icon) string {
	return icons[i][Variant(viper.GetString(key.IconsVariant))]
}
