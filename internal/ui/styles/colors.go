// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the EarthGPT TUI.
//
// Unlike terminal-background auto-detection, the palette here follows the
// application's own dark-mode flag, which the user toggles at runtime and
// which persists across sessions.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is one complete color scheme.
type Palette struct {
	// Accent colors
	Primary   lipgloss.Color // brand, headers, user highlights
	Secondary lipgloss.Color // assistant accents, selections
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color

	// Surfaces
	Surface    lipgloss.Color // main background
	SurfaceDim lipgloss.Color // header / status bar background
	Overlay    lipgloss.Color // borders, separators

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color
}

// DarkPalette is the scheme used when dark mode is on.
var DarkPalette = Palette{
	Primary:   lipgloss.Color("#22D3EE"),
	Secondary: lipgloss.Color("#A78BFA"),
	Success:   lipgloss.Color("#34D399"),
	Warning:   lipgloss.Color("#FBBF24"),
	Danger:    lipgloss.Color("#FB7185"),

	Surface:    lipgloss.Color("#1E1E2E"),
	SurfaceDim: lipgloss.Color("#181825"),
	Overlay:    lipgloss.Color("#313244"),

	TextPrimary:   lipgloss.Color("#CDD6F4"),
	TextSecondary: lipgloss.Color("#A6ADC8"),
	TextMuted:     lipgloss.Color("#6C7086"),
	TextInverse:   lipgloss.Color("#1E1E2E"),
}

// LightPalette is the scheme used when dark mode is off.
var LightPalette = Palette{
	Primary:   lipgloss.Color("#0891B2"),
	Secondary: lipgloss.Color("#7C3AED"),
	Success:   lipgloss.Color("#059669"),
	Warning:   lipgloss.Color("#D97706"),
	Danger:    lipgloss.Color("#E11D48"),

	Surface:    lipgloss.Color("#FFFFFF"),
	SurfaceDim: lipgloss.Color("#F5F5F5"),
	Overlay:    lipgloss.Color("#E5E5E5"),

	TextPrimary:   lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#6B7280"),
	TextMuted:     lipgloss.Color("#9CA3AF"),
	TextInverse:   lipgloss.Color("#FFFFFF"),
}
