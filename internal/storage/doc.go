// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for EarthGPT.
//
// The session store persists two entries through this package: the chat
// list and the dark-mode flag, both as JSON. Storage is an interface so
// tests can inject an in-memory or failing implementation; FileStorage
// is the production implementation, keeping one JSON file per key under
// ~/.earthgpt/state/ with crash-safe atomic writes.
//
// # Usage
//
//	st, err := storage.NewFileStorage()
//	err = st.Save("chats", data)
//	data, err := st.Load("chats")
package storage
