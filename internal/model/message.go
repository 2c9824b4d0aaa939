// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "EarthGPT"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat.
//
// Role and Content are fixed at construction and never mutated afterwards;
// a message moves between chats and buffers, it does not change.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Image is an encoded image payload (data URL), present only on
	// user-uploaded-image messages and the synthetic "image received"
	// assistant reply.
	Image string `json:"image,omitempty"`
}

// ErrEmptyContent is returned when constructing a message without content.
var ErrEmptyContent = errors.New("message content is required")

// NewMessage creates a message, validating the role and content.
func NewMessage(role Role, content string, image string) (*Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid message role: %q", role)
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Message{
		Role:    role,
		Content: content,
		Image:   image,
	}, nil
}

// NewUserMessage creates a user message.
func NewUserMessage(content string, image string) (*Message, error) {
	return NewMessage(RoleUser, content, image)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) (*Message, error) {
	return NewMessage(RoleAssistant, content, "")
}

// HasImage reports whether the message carries an image payload.
func (m *Message) HasImage() bool {
	return m.Image != ""
}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	cp := *m
	return &cp
}

// =============================================================================
// WELL-KNOWN MESSAGES
// =============================================================================

// GreetingText is the assistant message every fresh chat starts with.
const GreetingText = "# Welcome to EarthGPT! \U0001F44B\n\n" +
	"I'm an AI assistant specialized in analyzing LISS-4 satellite imagery and answering general questions."

// ImageReceivedText is the synthetic assistant reply appended after an
// image upload.
const ImageReceivedText = "## Image Received\n\n" +
	"I've received the satellite image. What would you like to know about it? You can:\n\n" +
	"- Ask about specific objects or features\n" +
	"- Request a general analysis\n" +
	"- Inquire about particular regions\n" +
	"- Get measurements or estimates"

// Greeting returns a fresh copy of the welcome message.
func Greeting() *Message {
	return &Message{Role: RoleAssistant, Content: GreetingText}
}
