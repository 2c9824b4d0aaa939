// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// EarthGPT TUI.
//
// Configuration comes from a TOML file with environment variable
// overrides on top, in order of precedence:
//
//   - EARTHGPT_* / OPENROUTER_API_KEY environment variables
//   - ~/.earthgpt/config.toml
//   - Built-in defaults
//
// The pieces the client historically forked over (model identifier,
// response chunking) are configuration here, not code paths.
package config
