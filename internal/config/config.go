// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables recognized on top of the config file.
const (
	// EnvAPIKey supplies the bearer credential for the inference API.
	EnvAPIKey = "EARTHGPT_API_KEY"

	// EnvAPIKeyFallback is honored when EnvAPIKey is unset, for users
	// who already export their OpenRouter key.
	EnvAPIKeyFallback = "OPENROUTER_API_KEY"

	// EnvModel overrides the model identifier.
	EnvModel = "EARTHGPT_MODEL"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete EarthGPT configuration.
type Config struct {
	// Model is the inference model identifier sent with every request.
	Model string `toml:"model"`

	// APIBaseURL is the base URL of the inference API.
	APIBaseURL string `toml:"api_base_url"`

	// APIKey is the bearer credential. Usually supplied via environment
	// rather than the file.
	APIKey string `toml:"api_key"`

	// MaxTokens bounds the model's output length per request.
	MaxTokens int `toml:"max_tokens"`

	// SiteURL is sent as the HTTP referer for rate-limit categorization.
	SiteURL string `toml:"site_url"`

	// SiteName is sent as the client title header.
	SiteName string `toml:"site_name"`

	// RequestTimeoutSecs bounds each inference request.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`

	// MaxChats limits how many chats are kept.
	MaxChats int `toml:"max_chats"`

	// MaxMessagesPerChat limits each chat's history.
	MaxMessagesPerChat int `toml:"max_messages_per_chat"`

	// ChunkResponses re-segments very long responses for rendering.
	ChunkResponses bool `toml:"chunk_responses"`

	// ChunkSize is the segment length used when chunking.
	ChunkSize int `toml:"chunk_size"`

	// StateDir overrides the persisted-state directory
	// (default ~/.earthgpt/state).
	StateDir string `toml:"state_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:              "google/gemini-2.5-pro-exp-03-25:free",
		APIBaseURL:         "https://openrouter.ai/api/v1",
		MaxTokens:          4000,
		SiteURL:            "https://earthgpt.local",
		SiteName:           "EarthGPT",
		RequestTimeoutSecs: 60,
		MaxChats:           10,
		MaxMessagesPerChat: 50,
		ChunkResponses:     true,
		ChunkSize:          1500,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigPath returns the expected config file location.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".earthgpt", "config.toml"), nil
}

// Load reads the config file (if present), applies environment
// overrides, and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from a specific file path. A missing
// file is not an error; defaults apply.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	} else if key := os.Getenv(EnvAPIKeyFallback); key != "" && c.APIKey == "" {
		c.APIKey = key
	}
	if m := os.Getenv(EnvModel); m != "" {
		c.Model = m
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration, clamping out-of-range bounds to
// sane values rather than failing.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url: %q", c.APIBaseURL)
	}

	if c.MaxTokens <= 0 {
		c.MaxTokens = 4000
	}
	if c.RequestTimeoutSecs <= 0 {
		c.RequestTimeoutSecs = 60
	}
	if c.MaxChats <= 0 {
		c.MaxChats = 10
	}
	if c.MaxMessagesPerChat <= 0 {
		c.MaxMessagesPerChat = 50
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1500
	}
	return nil
}

// HasAPIKey reports whether a bearer credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}
