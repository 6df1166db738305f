package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig selects the terminal palette.
type ThemeConfig struct {
	// Mode is "dark", "light" or empty for adaptive colors.
	Mode    string
	NoColor bool
}

// Colors is the hex palette used by the spinner and prompts.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme carries the resolved palette.
type Theme struct {
	NoColor bool
	Colors  Colors
}

var (
	lightColors = Colors{
		Primary:   "#C2185B",
		Secondary: "#7B1FA2",
		Success:   "#059669",
		Warning:   "#D97706",
		Error:     "#DC2626",
		Muted:     "#9CA3AF",
	}
	darkColors = Colors{
		Primary:   "#F06292",
		Secondary: "#BA68C8",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#6B7280",
	}
)

// NewTheme resolves a Theme from cfg. An empty mode follows the terminal
// background.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{NoColor: cfg.NoColor}
	switch cfg.Mode {
	case "light":
		t.Colors = lightColors
	case "dark":
		t.Colors = darkColors
	default:
		if lipgloss.HasDarkBackground() {
			t.Colors = darkColors
		} else {
			t.Colors = lightColors
		}
	}
	return t
}

// Huh returns the form theme matching t.
func (t *Theme) Huh() *huh.Theme {
	if t.NoColor {
		return huh.ThemeBase()
	}
	return huh.ThemeCharm()
}

// Style returns a foreground style for one of the palette colors.
func (t *Theme) Style(hex string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
