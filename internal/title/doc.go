// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package title derives human-readable chat labels from the first user
// message of a conversation.
//
// Derivation is a pure function of the message content: image-upload
// messages become "Image Analysis: <filename>" labels, text messages use
// their first sentence, and long candidates are truncated at a word
// boundary with an ellipsis.
package title
