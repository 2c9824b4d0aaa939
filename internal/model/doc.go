// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats and messages.
//
// # Key Types
//
//   - Message: one immutable turn in a conversation, optionally carrying
//     an attached image payload
//   - Chat: a titled, ordered container of messages, persisted across
//     sessions
//
// Messages never change after creation; only which chat holds them does.
// Chats enforce a per-chat message bound via TrimMessages, keeping the
// most recent messages in original order.
package model
