// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application, built from
// one palette. Rebuild it with NewTheme when the dark-mode flag flips.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile
	Palette      Palette

	// Application container
	App       lipgloss.Style
	Container lipgloss.Style

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Chat list sidebar
	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarItemMeta     lipgloss.Style

	// Message labels
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ImageBadge     lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Spinner and errors
	Spinner   lipgloss.Style
	ErrorText lipgloss.Style
}

// NewTheme creates a theme for the given dark-mode setting.
func NewTheme(dark bool) *Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}
	t.initStyles()
	return t
}

// GlamourStyle returns the markdown style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Overlay).
		PaddingRight(1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextInverse).
		Background(p.Primary)

	t.SidebarItemMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	t.ImageBadge = lipgloss.NewStyle().
		Foreground(p.Warning).
		Italic(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Secondary)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(p.Danger)
}
