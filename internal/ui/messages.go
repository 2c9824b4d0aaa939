// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// responseMsg carries a completed assistant reply.
type responseMsg struct {
	Text string
}

// sendFailedMsg carries a failed inference attempt. The error's message
// is the user-facing explanation and is rendered into the transcript.
type sendFailedMsg struct {
	Err error
}

// imageAttachedMsg carries a successfully encoded image upload.
type imageAttachedMsg struct {
	Name    string
	DataURL string
}

// imageFailedMsg carries a rejected or unreadable image upload.
type imageFailedMsg struct {
	Err error
}
