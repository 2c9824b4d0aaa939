// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud provides the OpenRouter gateway for remote inference.
//
// The client sends the full conversation history (plus an optional image
// attachment) to the chat completions endpoint and returns the
// normalized response text. There is no retry: a failed request maps to
// exactly one human-readable error, and the user resubmits manually.
// Every failure mode (missing credential, the distinct HTTP rejections
// 401, 402, 403 and 429, offline, unreachable, malformed response) has
// a fixed user-facing explanation suitable for display as an assistant
// message.
package cloud
