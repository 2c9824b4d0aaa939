// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea terminal interface for EarthGPT.
//
// The interface is a single full-screen model: a chat list sidebar, a
// scrolling transcript viewport, a one-line input, and a status bar.
// All conversation state lives in the session store; the UI reads it
// back after every mutation rather than keeping its own copy.
//
// Inference runs as a Bubble Tea command so the event loop stays
// responsive; the input is disabled while a request is in flight.
package ui
