// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderTitle is the title a chat carries until the first real user
// message rewrites it.
const PlaceholderTitle = "New Chat"

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat holds a titled, ordered conversation persisted across sessions.
type Chat struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`

	// Messages in conversational order (insertion order).
	Messages []*Message `json:"messages"`
}

// NewChat creates a chat with a generated ID and the given messages.
// An empty title falls back to the placeholder.
func NewChat(title string, messages []*Message) *Chat {
	if title == "" {
		title = PlaceholderTitle
	}
	return &Chat{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
		Messages:  cloneMessages(messages),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// SetMessages replaces the chat's message list with a copy of msgs.
func (c *Chat) SetMessages(msgs []*Message) {
	c.Messages = cloneMessages(msgs)
}

// TrimMessages keeps only the most recent max messages, preserving their
// relative order. A non-positive max leaves the chat untouched.
func (c *Chat) TrimMessages(max int) {
	if max <= 0 || len(c.Messages) <= max {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-max:]
}

// MessageCount returns the number of messages.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// FirstImage returns the image payload of the first message carrying one,
// or the empty string if no message has an image.
func (c *Chat) FirstImage() string {
	for _, msg := range c.Messages {
		if msg.HasImage() {
			return msg.Image
		}
	}
	return ""
}

// Clone creates a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	clone := *c
	clone.Messages = cloneMessages(c.Messages)
	return &clone
}

// cloneMessages copies a message slice so callers cannot alias the chat's
// internal list.
func cloneMessages(msgs []*Message) []*Message {
	out := make([]*Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}
