// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"log"

	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/storage"
	"github.com/earthwatch/earthgpt-tui/internal/title"
)

// Default capacity bounds.
const (
	// DefaultMaxChats is the maximum number of chats kept; oldest chats
	// are dropped beyond it.
	DefaultMaxChats = 10

	// DefaultMaxMessagesPerChat bounds each chat's history; the most
	// recent messages are kept.
	DefaultMaxMessagesPerChat = 50
)

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the capacity bounds and defaults for a Store.
type Config struct {
	// MaxChats limits the chat list (default 10).
	MaxChats int

	// MaxMessagesPerChat limits each chat's history (default 50).
	MaxMessagesPerChat int

	// DefaultDarkMode is used when no dark-mode flag has been persisted,
	// typically the terminal's system preference.
	DefaultDarkMode bool
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		MaxChats:           DefaultMaxChats,
		MaxMessagesPerChat: DefaultMaxMessagesPerChat,
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store owns all chat session state: the persisted chat list (newest
// first), the active chat id, the live message buffer the UI renders,
// and the image attached to the current conversation.
type Store struct {
	storage storage.Storage

	chats        []*model.Chat
	activeChatID string
	live         []*model.Message
	currentImage string
	darkMode     bool

	maxChats    int
	maxMessages int
}

// New creates a store backed by st, loading any persisted state.
// Malformed or absent entries fall back to defaults: an empty chat list
// and the configured dark-mode preference.
func New(st storage.Storage, cfg Config) *Store {
	if cfg.MaxChats <= 0 {
		cfg.MaxChats = DefaultMaxChats
	}
	if cfg.MaxMessagesPerChat <= 0 {
		cfg.MaxMessagesPerChat = DefaultMaxMessagesPerChat
	}

	s := &Store{
		storage:     st,
		live:        []*model.Message{model.Greeting()},
		darkMode:    cfg.DefaultDarkMode,
		maxChats:    cfg.MaxChats,
		maxMessages: cfg.MaxMessagesPerChat,
	}
	s.load()
	return s
}

// load restores the chat list and dark-mode flag from storage.
func (s *Store) load() {
	if data, err := s.storage.Load(storage.KeyChats); err == nil {
		var chats []*model.Chat
		if err := json.Unmarshal(data, &chats); err == nil {
			s.chats = chats
			s.truncate()
		} else {
			log.Printf("store: discarding malformed chat state: %v", err)
		}
	}

	if data, err := s.storage.Load(storage.KeyDarkMode); err == nil {
		var dark bool
		if err := json.Unmarshal(data, &dark); err == nil {
			s.darkMode = dark
		}
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Chats returns the chat list, newest first.
func (s *Store) Chats() []*model.Chat {
	out := make([]*model.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// ActiveChatID returns the id of the active chat, or "" when none.
func (s *Store) ActiveChatID() string {
	return s.activeChatID
}

// ActiveChat returns the active chat, or nil when none.
func (s *Store) ActiveChat() *model.Chat {
	return s.findChat(s.activeChatID)
}

// LiveMessages returns the message list currently displayed. It may run
// ahead of the persisted chat while a request is in flight.
func (s *Store) LiveMessages() []*model.Message {
	out := make([]*model.Message, len(s.live))
	copy(out, s.live)
	return out
}

// CurrentImage returns the image attached to the active conversation,
// or "" when none.
func (s *Store) CurrentImage() string {
	return s.currentImage
}

// =============================================================================
// CHAT LIFECYCLE
// =============================================================================

// StartNewChat creates a chat holding only the greeting, prepends it to
// the chat list, makes it active, and resets the live buffer and the
// attached image.
func (s *Store) StartNewChat() *model.Chat {
	chat := model.NewChat(model.PlaceholderTitle, []*model.Message{model.Greeting()})
	s.chats = append([]*model.Chat{chat}, s.chats...)
	s.activeChatID = chat.ID
	s.live = []*model.Message{model.Greeting()}
	s.currentImage = ""
	s.persist()
	return chat
}

// DeleteChat removes the chat with the given id. Deleting the active
// chat resets the active id, the live buffer (back to the greeting),
// and the attached image. Deleting an unknown id is a no-op.
func (s *Store) DeleteChat(chatID string) {
	idx := -1
	for i, chat := range s.chats {
		if chat.ID == chatID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.chats = append(s.chats[:idx], s.chats[idx+1:]...)

	if s.activeChatID == chatID {
		s.activeChatID = ""
		s.live = []*model.Message{model.Greeting()}
		s.currentImage = ""
	}
	s.persist()
}

// SelectChat makes the chat with the given id active, replacing the
// live buffer with its messages and restoring the image attached to the
// first message carrying one. An unknown id is silently ignored.
func (s *Store) SelectChat(chatID string) {
	chat := s.findChat(chatID)
	if chat == nil {
		return
	}
	s.activeChatID = chat.ID
	s.live = make([]*model.Message, len(chat.Messages))
	copy(s.live, chat.Messages)
	s.currentImage = chat.FirstImage()
}

// =============================================================================
// MESSAGE APPENDS
// =============================================================================

// AppendUserMessage appends a user message to the live buffer and folds
// it into the chat list. The first user message after the greeting
// derives the chat's title; when no chat is active yet, one is created
// carrying the full live buffer.
func (s *Store) AppendUserMessage(content string, image string) error {
	msg, err := model.NewUserMessage(content, image)
	if err != nil {
		return err
	}

	firstUserMessage := len(s.live) == 1 && s.live[0].Role == model.RoleAssistant

	s.live = append(s.live, msg)

	if firstUserMessage {
		s.adoptLive(title.Derive(content))
	} else {
		s.updateActiveChat()
	}
	s.persist()
	return nil
}

// AppendAssistantMessage appends an assistant message to the live buffer
// and the active chat. It never derives a title or creates a chat; with
// no active chat the message stays buffered in the live list only.
func (s *Store) AppendAssistantMessage(content string) error {
	msg, err := model.NewAssistantMessage(content)
	if err != nil {
		return err
	}

	s.live = append(s.live, msg)
	s.updateActiveChat()
	s.persist()
	return nil
}

// AttachImage records an uploaded image: the attached payload becomes
// the current image, and the live conversation gains the upload notice
// plus the synthetic "image received" assistant reply, both carrying
// the payload. The upload always (re)derives the chat title.
func (s *Store) AttachImage(fileName string, dataURL string) error {
	content := "Uploaded image: " + fileName

	userMsg, err := model.NewUserMessage(content, dataURL)
	if err != nil {
		return err
	}
	reply := &model.Message{
		Role:    model.RoleAssistant,
		Content: model.ImageReceivedText,
		Image:   dataURL,
	}

	s.currentImage = dataURL
	s.live = append(s.live, userMsg, reply)
	s.adoptLive(title.Derive(content))
	s.persist()
	return nil
}

// adoptLive folds the live buffer into the active chat with a fresh
// title, creating the chat when none is active.
func (s *Store) adoptLive(chatTitle string) {
	if chat := s.findChat(s.activeChatID); chat != nil {
		chat.SetMessages(s.live)
		chat.Title = chatTitle
		return
	}
	chat := model.NewChat(chatTitle, s.live)
	s.chats = append([]*model.Chat{chat}, s.chats...)
	s.activeChatID = chat.ID
}

// updateActiveChat mirrors the live buffer into the active chat, if any.
func (s *Store) updateActiveChat() {
	if chat := s.findChat(s.activeChatID); chat != nil {
		chat.SetMessages(s.live)
	}
}

// =============================================================================
// DARK MODE
// =============================================================================

// DarkMode returns the persisted dark-mode flag.
func (s *Store) DarkMode() bool {
	return s.darkMode
}

// SetDarkMode updates and persists the dark-mode flag.
func (s *Store) SetDarkMode(dark bool) {
	s.darkMode = dark
	data, _ := json.Marshal(dark)
	if err := s.storage.Save(storage.KeyDarkMode, data); err != nil {
		log.Printf("store: failed to persist dark mode: %v", err)
	}
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persist truncates the chat list and each chat's history to their bounds,
// then writes the result to storage. A write failure is logged and
// swallowed: the in-memory truncation has already happened, so the
// memory bound holds either way and the UI keeps working.
func (s *Store) persist() {
	s.truncate()

	data, err := json.Marshal(s.chats)
	if err != nil {
		log.Printf("store: failed to encode chats: %v", err)
		return
	}
	if err := s.storage.Save(storage.KeyChats, data); err != nil {
		log.Printf("store: failed to persist chats: %v", err)
	}
}

// truncate applies the capacity bounds in memory: the newest maxChats
// chats survive, and each keeps its most recent maxMessages messages.
func (s *Store) truncate() {
	if len(s.chats) > s.maxChats {
		s.chats = s.chats[:s.maxChats]
	}
	for _, chat := range s.chats {
		chat.TrimMessages(s.maxMessages)
	}
	if s.findChat(s.activeChatID) == nil {
		s.activeChatID = ""
	}
}

// findChat returns the chat with the given id, or nil.
func (s *Store) findChat(id string) *model.Chat {
	if id == "" {
		return nil
	}
	for _, chat := range s.chats {
		if chat.ID == id {
			return chat
		}
	}
	return nil
}
