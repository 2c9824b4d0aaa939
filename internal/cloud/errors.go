// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a send failure.
type Kind int

const (
	// KindMissingKey means no credential was configured; nothing was sent.
	KindMissingKey Kind = iota

	// KindRequest means the request could not be built or the response
	// body could not be read.
	KindRequest

	// KindOffline means the client itself appears to have no connectivity.
	KindOffline

	// KindConnection means the server could not be reached.
	KindConnection

	// KindStatus means the server answered with a non-200 status.
	KindStatus
)

// SendError is a failed inference attempt. Text is the fixed
// user-facing explanation for the failure mode, suitable for display
// as an assistant message.
type SendError struct {
	Kind   Kind
	Status int
	Text   string
}

func (e *SendError) Error() string {
	return e.Text
}

// Fixed explanations shown for each failure mode.
const (
	missingKeyText = "API key is not configured. Please check your environment variables."

	offlineText = "You appear to be offline. Please check your internet connection and try again."

	connectionErrorText = "### Connection Error\n\n" +
		"Unable to reach the OpenRouter API server. This could be due to:\n\n" +
		"1. Network connectivity issues\n" +
		"2. API server unavailability\n" +
		"3. Request timeout\n\n" +
		"Please check your connection and try again."

	invalidKeyText      = "Invalid API key. Please check your OpenRouter API key."
	paymentRequiredText = "Payment required. You may need to add credits to your OpenRouter account."
	forbiddenText       = "Access forbidden. Please check your API permissions or subscription plan."
	rateLimitedText     = "Too many requests. You may have exceeded your OpenRouter rate limits."
)

func errMissingKey() *SendError {
	return &SendError{Kind: KindMissingKey, Text: missingKeyText}
}

// mapStatusError maps a non-200 status to its fixed explanation. For
// statuses without a dedicated explanation the server's own error
// detail is included when the body carries one.
func mapStatusError(status int, body []byte) *SendError {
	e := &SendError{Kind: KindStatus, Status: status}
	switch status {
	case 401:
		e.Text = invalidKeyText
	case 402:
		e.Text = paymentRequiredText
	case 403:
		e.Text = forbiddenText
	case 429:
		e.Text = rateLimitedText
	default:
		e.Text = fmt.Sprintf("API Error: %s (Status: %d)", errorDetail(body), status)
	}
	return e
}

// errorDetail extracts the server's error message from the body, or
// falls back to a generic label.
func errorDetail(body []byte) string {
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return "request failed"
}
