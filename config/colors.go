package config

// Color and style definitions for terminal output: filter chips, category
// headers and item listings.

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ColorConfig holds the colors used when rendering to a terminal
type ColorConfig struct {
	// Filter chips
	ChipText           lipgloss.Color
	ChipActiveBorder   lipgloss.Color
	ChipInvertedBorder lipgloss.Color
	ChipInactiveBorder lipgloss.Color
	ChipNextQuery      lipgloss.Color

	// Category headers
	CategoryTitle lipgloss.Color

	// Item listing
	ItemID       lipgloss.Color
	ItemTitle    lipgloss.Color
	ItemLabel    lipgloss.Color
	ItemOverdue  lipgloss.Color
	ItemComplete lipgloss.Color
}

// DefaultColors returns the default (dark theme) color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		ChipText:           lipgloss.Color("#d0d0d0"),
		ChipActiveBorder:   lipgloss.Color("#22c55e"), // green
		ChipInvertedBorder: lipgloss.Color("#ef4444"), // red
		ChipInactiveBorder: lipgloss.Color("#4b5563"),
		ChipNextQuery:      lipgloss.Color("#808080"),

		CategoryTitle: lipgloss.Color("#ffa500"), // orange

		ItemID:       lipgloss.Color("#1e90ff"), // Dodger Blue
		ItemTitle:    lipgloss.Color("#b8b8b8"),
		ItemLabel:    lipgloss.Color("#767676"),
		ItemOverdue:  lipgloss.Color("#ef4444"),
		ItemComplete: lipgloss.Color("#5a6f8f"),
	}
}

var loadColors sync.Once
var globalColors *ColorConfig

// GetColors returns the global color configuration with theme-aware overrides.
// The theme is read once, on first use.
func GetColors() *ColorConfig {
	loadColors.Do(func() {
		colors := DefaultColors()
		if GetEffectiveTheme() == "light" {
			colors.ChipText = lipgloss.Color("#1f2937")
			colors.ChipInactiveBorder = lipgloss.Color("#9ca3af")
			colors.ItemTitle = lipgloss.Color("#000000")
			colors.CategoryTitle = lipgloss.Color("#b45309")
		}
		globalColors = colors
	})
	return globalColors
}
