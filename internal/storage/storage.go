// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/earthwatch/earthgpt-tui/internal/util"
)

// Well-known storage keys.
const (
	// KeyChats holds the persisted chat list (JSON array of Chat).
	KeyChats = "chats"

	// KeyDarkMode holds the dark-mode flag (JSON boolean).
	KeyDarkMode = "dark_mode"
)

// ErrKeyNotFound is returned when a key has no stored entry.
var ErrKeyNotFound = errors.New("storage key not found")

// =============================================================================
// STORAGE INTERFACE
// =============================================================================

// Storage is the durable key-value store the session core persists into.
//
// Implementations must return ErrKeyNotFound from Load when the key has
// never been saved.
type Storage interface {
	// Load returns the stored bytes for key.
	Load(key string) ([]byte, error)

	// Save durably stores data under key, replacing any previous entry.
	Save(key string, data []byte) error

	// Delete removes the entry for key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// =============================================================================
// FILE STORAGE
// =============================================================================

// FileStorage persists each key as a JSON file in a base directory.
type FileStorage struct {
	// BaseDir is the directory holding one file per key.
	// Default: ~/.earthgpt/state/
	BaseDir string
}

// NewFileStorage creates file storage rooted in the default state
// directory under the user's home.
func NewFileStorage() (*FileStorage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStorageWithDir(filepath.Join(homeDir, ".earthgpt", "state"))
}

// NewFileStorageWithDir creates file storage rooted in a custom directory.
func NewFileStorageWithDir(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStorage{BaseDir: baseDir}, nil
}

// Load returns the stored bytes for key.
func (s *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save writes data under key using an atomic write, so a crash mid-save
// leaves either the old entry or the new one, never a partial file.
func (s *FileStorage) Save(key string, data []byte) error {
	return util.AtomicWriteFile(s.filePath(key), data, 0644)
}

// Delete removes the entry for key.
func (s *FileStorage) Delete(key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// filePath returns the file backing a key. Keys are sanitized so a
// hostile key cannot escape the base directory.
func (s *FileStorage) filePath(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.BaseDir, fmt.Sprintf("%s.json", safe))
}
