// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/storage"
)

// memStorage is an in-memory Storage for tests, with an optional
// injected save failure.
type memStorage struct {
	entries  map[string][]byte
	failSave bool
}

func newMemStorage() *memStorage {
	return &memStorage{entries: make(map[string][]byte)}
}

func (m *memStorage) Load(key string) ([]byte, error) {
	data, ok := m.entries[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return data, nil
}

func (m *memStorage) Save(key string, data []byte) error {
	if m.failSave {
		return errors.New("storage quota exceeded")
	}
	m.entries[key] = data
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.entries, key)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	mem := newMemStorage()
	return New(mem, DefaultConfig()), mem
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestNew_EmptyStorage(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Empty(t, s.Chats())
	assert.Empty(t, s.ActiveChatID())

	live := s.LiveMessages()
	require.Len(t, live, 1)
	assert.Equal(t, model.RoleAssistant, live[0].Role)
	assert.Equal(t, model.GreetingText, live[0].Content)
}

func TestNew_MalformedStateFallsBack(t *testing.T) {
	mem := newMemStorage()
	mem.entries[storage.KeyChats] = []byte("not json{")

	s := New(mem, DefaultConfig())
	assert.Empty(t, s.Chats())
}

func TestStartNewChat(t *testing.T) {
	s, _ := newTestStore(t)

	chat := s.StartNewChat()

	require.Len(t, s.Chats(), 1)
	assert.Equal(t, chat.ID, s.ActiveChatID())
	assert.Equal(t, model.PlaceholderTitle, chat.Title)
	require.Equal(t, 1, chat.MessageCount())
	assert.Equal(t, model.GreetingText, chat.Messages[0].Content)
	assert.Empty(t, s.CurrentImage())
}

func TestStartNewChat_PrependsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartNewChat()
	second := s.StartNewChat()

	chats := s.Chats()
	require.Len(t, chats, 2)
	assert.Equal(t, second.ID, chats[0].ID)
	assert.Equal(t, first.ID, chats[1].ID)
}

func TestStartNewChat_ChatCountBound(t *testing.T) {
	s, _ := newTestStore(t)

	var ids []string
	for i := 0; i < 15; i++ {
		ids = append(ids, s.StartNewChat().ID)
	}

	chats := s.Chats()
	require.Len(t, chats, DefaultMaxChats)
	// The ten most recently created chats survive, newest first.
	for i := 0; i < DefaultMaxChats; i++ {
		assert.Equal(t, ids[14-i], chats[i].ID)
	}
}

// =============================================================================
// DELETE / SELECT TESTS
// =============================================================================

func TestDeleteChat_Active(t *testing.T) {
	s, _ := newTestStore(t)

	chat := s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("What is this lake?", ""))
	s.DeleteChat(chat.ID)

	assert.Empty(t, s.Chats())
	assert.Empty(t, s.ActiveChatID())
	assert.Empty(t, s.CurrentImage())

	live := s.LiveMessages()
	require.Len(t, live, 1)
	assert.Equal(t, model.GreetingText, live[0].Content)
}

func TestDeleteChat_NonActive(t *testing.T) {
	s, _ := newTestStore(t)

	victim := s.StartNewChat()
	active := s.StartNewChat()
	s.DeleteChat(victim.ID)

	require.Len(t, s.Chats(), 1)
	assert.Equal(t, active.ID, s.ActiveChatID())
}

func TestDeleteChat_UnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("keep me", ""))
	before := s.LiveMessages()

	s.DeleteChat("no_such_chat")

	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, before, s.LiveMessages())
}

func TestSelectChat(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("about the first chat", ""))
	s.StartNewChat()

	s.SelectChat(first.ID)

	assert.Equal(t, first.ID, s.ActiveChatID())
	live := s.LiveMessages()
	require.Len(t, live, 2)
	assert.Equal(t, "about the first chat", live[1].Content)
}

func TestSelectChat_RestoresImage(t *testing.T) {
	s, _ := newTestStore(t)

	withImage := s.StartNewChat()
	require.NoError(t, s.AttachImage("scene.png", "data:image/png;base64,AAA"))
	s.StartNewChat()
	require.Empty(t, s.CurrentImage())

	s.SelectChat(withImage.ID)
	assert.Equal(t, "data:image/png;base64,AAA", s.CurrentImage())
}

func TestSelectChat_UnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	active := s.StartNewChat()
	s.SelectChat("no_such_chat")
	assert.Equal(t, active.ID, s.ActiveChatID())
}

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestAppendUserMessage_DerivesTitleOnFirst(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("What is this lake? It looks large.", ""))

	chats := s.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "What is this lake?", chats[0].Title)
}

func TestAppendUserMessage_CreatesChatWhenNoneActive(t *testing.T) {
	s, _ := newTestStore(t)

	// No StartNewChat: the first question adopts the live buffer into a
	// brand new chat.
	require.NoError(t, s.AppendUserMessage("Hello sensor world", ""))

	chats := s.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, chats[0].ID, s.ActiveChatID())
	assert.Equal(t, "Hello sensor world", chats[0].Title)
	require.Equal(t, 2, chats[0].MessageCount())
	assert.Equal(t, model.RoleAssistant, chats[0].Messages[0].Role)
	assert.Equal(t, model.RoleUser, chats[0].Messages[1].Role)
}

func TestAppendUserMessage_LaterMessagesKeepTitle(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("First question here", ""))
	require.NoError(t, s.AppendAssistantMessage("An answer"))
	require.NoError(t, s.AppendUserMessage("Second question, different words", ""))

	assert.Equal(t, "First question here", s.Chats()[0].Title)
}

func TestAppendUserMessage_EmptyContentRejected(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Error(t, s.AppendUserMessage("", ""))
}

func TestAppendAssistantMessage_NoActiveChatStaysLive(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.AppendAssistantMessage("floating reply"))

	assert.Empty(t, s.Chats())
	live := s.LiveMessages()
	require.Len(t, live, 2)
	assert.Equal(t, "floating reply", live[1].Content)
}

func TestAppendMessages_PerChatBound(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("q0", ""))
	for i := 0; i < 30; i++ {
		require.NoError(t, s.AppendAssistantMessage("a"+strconv.Itoa(i)))
		require.NoError(t, s.AppendUserMessage("q"+strconv.Itoa(i+1), ""))
	}

	chat := s.Chats()[0]
	require.Equal(t, DefaultMaxMessagesPerChat, chat.MessageCount())

	// Most recent messages retained in original relative order: the
	// last append was q30, preceded by a29.
	assert.Equal(t, "q30", chat.Messages[chat.MessageCount()-1].Content)
	assert.Equal(t, "a29", chat.Messages[chat.MessageCount()-2].Content)
}

// =============================================================================
// IMAGE FLOW TESTS
// =============================================================================

func TestAttachImage(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AttachImage("satellite_photo_2024.png", "data:image/png;base64,AAA"))

	assert.Equal(t, "data:image/png;base64,AAA", s.CurrentImage())

	live := s.LiveMessages()
	require.Len(t, live, 3)
	assert.Equal(t, "Uploaded image: satellite_photo_2024.png", live[1].Content)
	assert.True(t, live[1].HasImage())
	assert.Equal(t, model.ImageReceivedText, live[2].Content)
	assert.True(t, live[2].HasImage())

	assert.Equal(t, "Image Analysis: satellite_photo_2024", s.Chats()[0].Title)
}

func TestAttachImage_CreatesChatWhenNoneActive(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.AttachImage("delta.png", "data:image/png;base64,BBB"))

	chats := s.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "Image Analysis: delta.png", chats[0].Title)
	assert.Equal(t, chats[0].ID, s.ActiveChatID())
}

func TestStartNewChat_ClearsImage(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartNewChat()
	require.NoError(t, s.AttachImage("a.png", "data:image/png;base64,AAA"))
	s.StartNewChat()

	assert.Empty(t, s.CurrentImage())
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestPersistence_RoundTrip(t *testing.T) {
	mem := newMemStorage()

	s := New(mem, DefaultConfig())
	s.StartNewChat()
	require.NoError(t, s.AppendUserMessage("Remember me after restart", ""))

	// A fresh store over the same storage sees the persisted chats.
	reloaded := New(mem, DefaultConfig())
	chats := reloaded.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "Remember me after restart", chats[0].Title)
	require.Equal(t, 2, chats[0].MessageCount())
	// The active chat reference is session state, not persisted.
	assert.Empty(t, reloaded.ActiveChatID())
}

func TestPersistence_TrimsBeforeWrite(t *testing.T) {
	mem := newMemStorage()
	s := New(mem, DefaultConfig())

	for i := 0; i < 12; i++ {
		s.StartNewChat()
	}

	var persisted []*model.Chat
	require.NoError(t, json.Unmarshal(mem.entries[storage.KeyChats], &persisted))
	assert.Len(t, persisted, DefaultMaxChats)
}

func TestPersistence_StorageFailureStillBoundsMemory(t *testing.T) {
	mem := newMemStorage()
	mem.failSave = true
	s := New(mem, DefaultConfig())

	// Every mutation fails to write, but memory must stay bounded and
	// no call may surface the storage error.
	for i := 0; i < 20; i++ {
		s.StartNewChat()
		require.NoError(t, s.AppendUserMessage("question "+strconv.Itoa(i), ""))
	}

	assert.Len(t, s.Chats(), DefaultMaxChats)
	assert.Empty(t, mem.entries[storage.KeyChats])
}

func TestDarkMode(t *testing.T) {
	mem := newMemStorage()

	s := New(mem, Config{DefaultDarkMode: true})
	assert.True(t, s.DarkMode())

	s.SetDarkMode(false)
	assert.False(t, s.DarkMode())

	// The flag survives a restart and beats the default.
	reloaded := New(mem, Config{DefaultDarkMode: true})
	assert.False(t, reloaded.DarkMode())
}

func TestDarkMode_StorageFailureKeepsMemoryValue(t *testing.T) {
	mem := newMemStorage()
	mem.failSave = true

	s := New(mem, Config{})
	s.SetDarkMode(true)
	assert.True(t, s.DarkMode())
}
