// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the process-wide chat session state.
//
// Store is the single authority over the chat list, the active chat, and
// the live message buffer. It enforces the capacity invariants (at most
// 10 chats, at most 50 messages per chat) and keeps persisted state
// consistent with memory: every mutation truncates in memory first and
// then writes through the injected storage, so a storage failure can
// never let state grow unbounded.
//
// Store is not safe for concurrent use. All mutation happens from the
// UI event loop in response to discrete user actions or the completion
// of the single outstanding network call.
package store
