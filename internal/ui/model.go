// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/store"
	"github.com/earthwatch/earthgpt-tui/internal/ui/styles"
)

// inferenceClient is the slice of the cloud client the UI needs.
type inferenceClient interface {
	Send(ctx context.Context, history []*model.Message, question string, image string) (string, error)
}

// Layout constants.
const (
	sidebarWidth   = 24
	headerHeight   = 1
	inputHeight    = 3
	statusHeight   = 1
	inputCharLimit = 4096
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the top-level Bubble Tea model.
type Model struct {
	// Application state
	store  *store.Store
	client inferenceClient
	theme  *styles.Theme

	// Dimensions
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Markdown rendering
	renderer *glamour.TermRenderer

	// Request in flight; input is disabled while true.
	waiting bool

	// Transient status line (image upload errors and similar).
	statusMsg string
}

// New creates the top-level model.
func New(st *store.Store, client inferenceClient) Model {
	theme := styles.NewTheme(st.DarkMode())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the imagery, or /image <path> to attach..."
	ti.CharLimit = inputCharLimit
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	m := Model{
		store:    st,
		client:   client,
		theme:    theme,
		viewport: vp,
		input:    ti,
		spinner:  sp,
		keyMap:   DefaultKeyMap(),
	}
	m.rebuildRenderer(80)
	m.refreshViewport()
	return m
}

// rebuildRenderer recreates the markdown renderer for the given wrap
// width and the current theme.
func (m *Model) rebuildRenderer(width int) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to plain text rendering.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// transcriptWidth is the width available to the message viewport.
func (m Model) transcriptWidth() int {
	w := m.width - sidebarWidth - 3
	if w < 20 {
		w = 20
	}
	return w
}

// transcriptHeight is the height available to the message viewport.
func (m Model) transcriptHeight() int {
	h := m.height - headerHeight - inputHeight - statusHeight
	if h < 3 {
		h = 3
	}
	return h
}
