// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// TruncationMarker is emitted by the remote model when it hits its
	// output-length limit.
	TruncationMarker = "[MAX_TOKENS]"

	// TruncationWarning replaces a response carrying the truncation marker.
	TruncationWarning = "### Warning\n\n" +
		"Response was truncated due to length limits. Please try a more specific query."

	// DefaultChunkSize is the length beyond which extracted text is
	// re-segmented for rendering.
	DefaultChunkSize = 1500

	// ChunkSeparator joins re-segmented chunks.
	ChunkSeparator = "\n\n---\n\n"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// RemoteError is a structured error object returned by the endpoint in
// place of a completion.
type RemoteError struct {
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return "API Error: " + e.Message
}

// ShapeError indicates a response that matched none of the understood
// shapes. It carries the raw payload for diagnostics.
type ShapeError struct {
	Raw []byte
}

// Error implements the error interface. The message lists the shapes the
// normalizer understands so the mismatch can be diagnosed.
func (e *ShapeError) Error() string {
	return "### API Response Error\n\n" +
		"Received unexpected response format from OpenRouter API.\n\n" +
		"Expected one of these formats:\n" +
		`1. Standard OpenAI: {"choices":[{"message":{"content":"..."}}]}` + "\n" +
		`2. OpenRouter Wrapped: {"result":{"message":{"content":"..."}}}` + "\n" +
		`3. Direct Message: {"message":{"content":"..."}}` + "\n" +
		`4. Simple Text: "response text"` + "\n\n" +
		"Please check the latest OpenRouter API documentation for updates.\n\n" +
		"Received: " + string(e.Raw)
}

// =============================================================================
// SHAPE MATCHERS
// =============================================================================

// matcher attempts to extract text from one known response shape.
type matcher struct {
	name    string
	extract func(raw []byte) (string, bool)
}

// matchers are evaluated in priority order; the first hit wins.
var matchers = []matcher{
	{"openrouter wrapped", extractWrapped},
	{"chat completion choices", extractChoices},
	{"direct message", extractDirect},
	{"bare string", extractString},
	{"message array", extractArray},
}

type innerMessage struct {
	Content string `json:"content"`
}

func extractWrapped(raw []byte) (string, bool) {
	var body struct {
		Result *struct {
			Message *innerMessage `json:"message"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	if body.Result == nil || body.Result.Message == nil || body.Result.Message.Content == "" {
		return "", false
	}
	return body.Result.Message.Content, true
}

func extractChoices(raw []byte) (string, bool) {
	var body struct {
		Choices []struct {
			Message innerMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	if len(body.Choices) == 0 || body.Choices[0].Message.Content == "" {
		return "", false
	}
	return body.Choices[0].Message.Content, true
}

func extractDirect(raw []byte) (string, bool) {
	var body struct {
		Message *innerMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	if body.Message == nil || body.Message.Content == "" {
		return "", false
	}
	return body.Message.Content, true
}

func extractString(raw []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, s != ""
}

func extractArray(raw []byte) (string, bool) {
	var body []innerMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	if len(body) == 0 || body[0].Content == "" {
		return "", false
	}
	return body[0].Content, true
}

// extractError pulls a structured error object out of the response.
func extractError(raw []byte) (string, bool) {
	var body struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	if body.Error == nil || body.Error.Message == "" {
		return "", false
	}
	return body.Error.Message, true
}

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractText extracts plain text from a raw inference response.
//
// Shapes are tried in priority order. A body that is not JSON at all is
// treated as the reply text itself. A response carrying only an error
// object yields a *RemoteError; a JSON response no matcher understands
// yields a *ShapeError. Text containing the truncation marker is
// replaced with a fixed warning.
func ExtractText(raw []byte) (string, error) {
	for _, m := range matchers {
		if text, ok := m.extract(raw); ok {
			if strings.Contains(text, TruncationMarker) {
				return TruncationWarning, nil
			}
			return text, nil
		}
	}

	if text, ok := extractPlain(raw); ok {
		if strings.Contains(text, TruncationMarker) {
			return TruncationWarning, nil
		}
		return text, nil
	}

	if msg, ok := extractError(raw); ok {
		return "", &RemoteError{Message: msg}
	}

	return "", &ShapeError{Raw: raw}
}

// extractPlain accepts a non-JSON body as the reply text itself. An
// empty or all-whitespace body does not count.
func extractPlain(raw []byte) (string, bool) {
	if json.Valid(raw) {
		return "", false
	}
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// =============================================================================
// CHUNKING
// =============================================================================

// Chunk re-segments long text into fixed-size pieces joined by a visible
// separator, to keep downstream rendering manageable. Text at or below
// the chunk size is returned unchanged. A non-positive size uses
// DefaultChunkSize.
func Chunk(text string, size int) string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	if len(runes) <= size {
		return text
	}

	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return strings.Join(chunks, ChunkSeparator)
}
