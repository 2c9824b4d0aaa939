// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package normalize extracts plain text from the several response shapes
// the inference endpoint is known to return.
//
// The endpoint does not guarantee a single response structure, so
// extraction walks an ordered list of shape matchers: the OpenRouter
// wrapped form, the standard chat-completion form, a direct message,
// a bare string, and an array of messages. A response carrying an error
// object is surfaced as a *RemoteError, and anything unrecognized as a
// *ShapeError holding the raw payload for diagnostics.
package normalize
