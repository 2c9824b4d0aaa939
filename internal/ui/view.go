// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/util"
)

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(),
		m.viewport.View(),
	)
	input := m.renderInput()
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)
}

// renderHeader renders the one-line application header.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("EarthGPT")
	subtitle := m.theme.HeaderSubtitle.Render(" satellite imagery assistant")
	line := title + subtitle
	return m.theme.Header.Width(m.width).Render(line)
}

// renderSidebar renders the chat list, newest first, with the active
// chat highlighted.
func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	chats := m.store.Chats()
	active := m.store.ActiveChatID()
	itemWidth := sidebarWidth - 2

	if len(chats) == 0 {
		b.WriteString(m.theme.SidebarItemMeta.Render("(none yet)"))
	}
	for _, c := range chats {
		label := runewidth.Truncate(c.Title, itemWidth, "…")
		if c.ID == active {
			b.WriteString(m.theme.SidebarItemSelected.Width(itemWidth).Render(label))
		} else {
			b.WriteString(m.theme.SidebarItem.Width(itemWidth).Render(label))
		}
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.transcriptHeight()).
		Render(b.String())
}

// renderInput renders the input area, replaced by the spinner while a
// request is in flight.
func (m Model) renderInput() string {
	var line string
	if m.waiting {
		line = m.spinner.View() + " Waiting for EarthGPT..."
	} else {
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(line)
}

// renderStatusBar renders the shortcut help line, or the transient
// status message when one is set.
func (m Model) renderStatusBar() string {
	if m.statusMsg != "" {
		msg := util.TruncateRunes(m.statusMsg, m.width-4)
		return m.theme.StatusBar.Width(m.width).Render(
			m.theme.ErrorText.Render(msg))
	}

	shortcuts := []struct{ k, d string }{
		{"enter", "send"},
		{"ctrl+n", "new"},
		{"ctrl+d", "delete"},
		{"ctrl+j/k", "switch"},
		{"ctrl+t", "theme"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		parts[i] = m.theme.ShortcutKey.Render(s.k) + " " + m.theme.ShortcutDesc.Render(s.d)
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the live conversation into the viewport and
// scrolls to the bottom.
func (m *Model) refreshViewport() {
	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = m.transcriptHeight()
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders every live message.
func (m *Model) renderTranscript() string {
	msgs := m.store.LiveMessages()
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n")
}

// renderMessage renders one message: a role label, an optional image
// badge, and the content. Assistant markdown goes through glamour; user
// text is shown verbatim.
func (m *Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	switch msg.Role {
	case model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render(msg.Role.DisplayName()))
	default:
		b.WriteString(m.theme.AssistantLabel.Render(msg.Role.DisplayName()))
	}
	if msg.HasImage() {
		b.WriteString(" " + m.theme.ImageBadge.Render("[image attached]"))
	}
	b.WriteString("\n")

	if msg.Role == model.RoleAssistant && m.renderer != nil {
		out, err := m.renderer.Render(msg.Content)
		if err != nil {
			b.WriteString(msg.Content)
		} else {
			b.WriteString(strings.TrimRight(out, "\n"))
		}
	} else {
		b.WriteString(wrapPlain(msg.Content, m.transcriptWidth()))
	}
	b.WriteString("\n")
	return b.String()
}

// wrapPlain wraps plain text at width without breaking words when it
// can avoid it.
func wrapPlain(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrapLine(line, width))
	}
	return b.String()
}

func wrapLine(line string, width int) string {
	if runewidth.StringWidth(line) <= width {
		return line
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var b strings.Builder
	cur := 0
	for i, w := range words {
		wlen := runewidth.StringWidth(w)
		if i > 0 && cur+1+wlen > width {
			b.WriteString("\n")
			cur = 0
		} else if i > 0 {
			b.WriteString(" ")
			cur++
		}
		b.WriteString(w)
		cur += wlen
	}
	return b.String()
}
