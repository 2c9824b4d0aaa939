// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/ui/styles"
	"github.com/earthwatch/earthgpt-tui/internal/util"
)

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case responseMsg:
		m.waiting = false
		if err := m.store.AppendAssistantMessage(msg.Text); err != nil {
			m.statusMsg = err.Error()
		}
		m.refreshViewport()
		return m, nil

	case sendFailedMsg:
		m.waiting = false
		if err := m.store.AppendAssistantMessage("### Error\n\n" + msg.Err.Error()); err != nil {
			m.statusMsg = err.Error()
		}
		m.refreshViewport()
		return m, nil

	case imageAttachedMsg:
		if err := m.store.AttachImage(msg.Name, msg.DataURL); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = ""
		}
		m.refreshViewport()
		return m, nil

	case imageFailedMsg:
		m.statusMsg = msg.Err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleResize recomputes the layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = m.transcriptHeight()
	m.input.Width = m.width - 6

	m.rebuildRenderer(m.transcriptWidth())
	m.refreshViewport()
	return m, nil
}

// handleKey dispatches keyboard shortcuts.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Send):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.StartNewChat()
		m.statusMsg = ""
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteChat):
		m.store.DeleteChat(m.store.ActiveChatID())
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NextChat):
		m.selectAdjacentChat(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PrevChat):
		m.selectAdjacentChat(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleDark):
		return m.toggleDarkMode()

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleSubmit sends the typed question, or runs the /image command.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()

	if path, ok := strings.CutPrefix(text, "/image "); ok {
		return m, attachImageCmd(strings.TrimSpace(path))
	}

	// Capture the history and image before the append so the request
	// carries the conversation as it stood when the question was asked.
	history := m.store.LiveMessages()
	image := m.store.CurrentImage()

	if err := m.store.AppendUserMessage(text, ""); err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	m.statusMsg = ""
	m.waiting = true
	m.refreshViewport()

	return m, tea.Batch(m.spinner.Tick, sendCmd(m.client, history, text, image))
}

// selectAdjacentChat moves the active chat selection by delta within the
// chat list.
func (m *Model) selectAdjacentChat(delta int) {
	chats := m.store.Chats()
	if len(chats) == 0 {
		return
	}

	active := m.store.ActiveChatID()
	idx := 0
	for i, c := range chats {
		if c.ID == active {
			idx = i
			break
		}
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(chats) {
		idx = len(chats) - 1
	}

	m.store.SelectChat(chats[idx].ID)
	m.refreshViewport()
	m.viewport.GotoBottom()
}

// toggleDarkMode flips and persists the dark-mode flag and rebuilds the
// theme-dependent pieces.
func (m Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	dark := !m.store.DarkMode()
	m.store.SetDarkMode(dark)

	m.theme = styles.NewTheme(dark)
	m.spinner.Style = m.theme.Spinner
	m.rebuildRenderer(m.transcriptWidth())
	m.refreshViewport()
	return m, nil
}

// updateComponents forwards a message to the focused components.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if !m.waiting {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs one inference request in the background.
func sendCmd(client inferenceClient, history []*model.Message, question string, image string) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Send(context.Background(), history, question, image)
		if err != nil {
			return sendFailedMsg{Err: err}
		}
		return responseMsg{Text: text}
	}
}

// attachImageCmd encodes an image file into a data URL off the event loop.
func attachImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		dataURL, err := util.EncodeImageFile(path)
		if err != nil {
			return imageFailedMsg{Err: err}
		}
		return imageAttachedMsg{Name: filepath.Base(path), DataURL: dataURL}
	}
}
