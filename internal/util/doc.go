// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the EarthGPT TUI.
//
// It contains the low-level helpers the rest of the application builds on:
//
//   - AtomicWriteFile: crash-safe file writes for persisted state
//   - TruncateRunes: rune-aware string truncation for display
//   - EncodeImageFile: size-validated base64 data URL encoding of images
package util
