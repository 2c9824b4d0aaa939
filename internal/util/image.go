// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// Image attachment size limits.
const (
	// MaxImageBytes is the maximum allowed raw image size (10MB).
	MaxImageBytes = 10 * 1024 * 1024

	// MaxEncodedLength is the maximum allowed encoded data URL length
	// (approximately 13MB, the base64 expansion of MaxImageBytes).
	MaxEncodedLength = 13 * 1024 * 1024
)

// Image attachment errors.
var (
	// ErrImageTooLarge indicates the raw image file exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image size must be less than 10MB")

	// ErrEncodedTooLarge indicates the encoded payload exceeds MaxEncodedLength.
	ErrEncodedTooLarge = errors.New("image size too large after encoding")
)

// EncodeImageFile reads an image file and returns it as a base64 data URL
// suitable for embedding in an inference request.
//
// The raw file is rejected if it exceeds MaxImageBytes, and the encoded
// result is rejected if it exceeds MaxEncodedLength.
func EncodeImageFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	// Sniff the content type from the file bytes rather than trusting the
	// extension.
	mimeType := http.DetectContentType(data)

	encoded := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	if len(encoded) > MaxEncodedLength {
		return "", ErrEncodedTooLarge
	}

	return encoded, nil
}
