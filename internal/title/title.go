// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package title

import (
	"strings"
	"unicode"

	"github.com/earthwatch/earthgpt-tui/internal/util"
)

const (
	// imageMarker prefixes the content of image-upload messages.
	imageMarker = "Uploaded image:"

	// maxTitleRunes is the hard cap on a derived title before truncation.
	maxTitleRunes = 40

	// minBreakIndex is the lowest word-boundary index worth breaking at;
	// breaking earlier would cut the title too short.
	minBreakIndex = 20

	// imageNameRunes is how much of the uploaded filename survives into
	// an image-analysis title.
	imageNameRunes = 20
)

// Derive generates a descriptive chat title from a user message.
//
// Image-upload messages become "Image Analysis: <filename prefix>". Text
// messages use their first sentence (terminated by '.', '!' or '?'
// followed by whitespace or end of string), falling back to the whole
// content. Candidates longer than 40 characters are truncated, breaking
// at the last space when that space sits past index 20, and finished
// with an ellipsis.
func Derive(content string) string {
	if strings.HasPrefix(content, imageMarker) {
		fileName := strings.Replace(content, imageMarker+" ", "", 1)
		return "Image Analysis: " + util.TruncateRunesNoEllipsis(fileName, imageNameRunes)
	}

	title := content
	if sentence, ok := firstSentence(content); ok {
		title = sentence
	}

	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}

	truncated := runes[:maxTitleRunes]
	if idx := lastSpace(truncated); idx > minBreakIndex {
		truncated = truncated[:idx]
	}
	return string(truncated) + "..."
}

// firstSentence returns the leading sentence of content, trimmed.
// A sentence ends with '.', '!' or '?' followed by whitespace or the end
// of the string.
func firstSentence(content string) (string, bool) {
	runes := []rune(content)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			return strings.TrimSpace(string(runes[:i+1])), true
		}
		// A terminator inside a word (e.g. "3.5") ends the scan: the
		// leading sentence may not contain terminator characters.
		return "", false
	}
	return "", false
}

// lastSpace returns the index of the last space rune, or -1.
func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
