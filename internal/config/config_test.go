// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model == "" {
		t.Error("default model must be set")
	}
	if cfg.MaxChats != 10 {
		t.Errorf("MaxChats = %d, want 10", cfg.MaxChats)
	}
	if cfg.MaxMessagesPerChat != 50 {
		t.Errorf("MaxMessagesPerChat = %d, want 50", cfg.MaxMessagesPerChat)
	}
	if cfg.RequestTimeoutSecs != 60 {
		t.Errorf("RequestTimeoutSecs = %d, want 60", cfg.RequestTimeoutSecs)
	}
	if cfg.ChunkSize != 1500 {
		t.Errorf("ChunkSize = %d, want 1500", cfg.ChunkSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyFallback, "")
	t.Setenv(EnvModel, "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Model != DefaultConfig().Model {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
	if cfg.HasAPIKey() {
		t.Error("no key should be configured")
	}
}

func TestLoadFrom_File(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyFallback, "")
	t.Setenv(EnvModel, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
model = "deepseek/deepseek-chat"
max_tokens = 2000
chunk_responses = false
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Model != "deepseek/deepseek-chat" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", cfg.MaxTokens)
	}
	if cfg.ChunkResponses {
		t.Error("ChunkResponses should be false")
	}
	// Untouched fields keep defaults.
	if cfg.MaxChats != 10 {
		t.Errorf("MaxChats = %d, want 10", cfg.MaxChats)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "sk-or-test-key")
	t.Setenv(EnvModel, "openai/gpt-4o")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "sk-or-test-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Model != "openai/gpt-4o" {
		t.Errorf("Model = %q", cfg.Model)
	}
}

func TestLoadFrom_FallbackKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyFallback, "sk-or-fallback")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "sk-or-fallback" {
		t.Errorf("APIKey = %q, want fallback key", cfg.APIKey)
	}
}

func TestValidate_Clamping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxChats = -1
	cfg.MaxMessagesPerChat = 0
	cfg.MaxTokens = -5
	cfg.RequestTimeoutSecs = 0
	cfg.ChunkSize = -10

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.MaxChats != 10 || cfg.MaxMessagesPerChat != 50 {
		t.Errorf("bounds not clamped: chats=%d msgs=%d", cfg.MaxChats, cfg.MaxMessagesPerChat)
	}
	if cfg.MaxTokens != 4000 || cfg.RequestTimeoutSecs != 60 || cfg.ChunkSize != 1500 {
		t.Errorf("limits not clamped: tokens=%d timeout=%d chunk=%d",
			cfg.MaxTokens, cfg.RequestTimeoutSecs, cfg.ChunkSize)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty model should fail validation")
	}

	cfg = DefaultConfig()
	cfg.APIBaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid base URL should fail validation")
	}
}
