// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()
	st, err := NewFileStorageWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorageWithDir failed: %v", err)
	}
	return st
}

func TestFileStorage_RoundTrip(t *testing.T) {
	st := newTestStorage(t)

	data := []byte(`[{"id":"1","title":"New Chat"}]`)
	if err := st.Save(KeyChats, data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := st.Load(KeyChats)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Load = %s, want %s", got, data)
	}
}

func TestFileStorage_MissingKey(t *testing.T) {
	st := newTestStorage(t)

	_, err := st.Load("absent")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Load(absent) error = %v, want ErrKeyNotFound", err)
	}
}

func TestFileStorage_Overwrite(t *testing.T) {
	st := newTestStorage(t)

	if err := st.Save(KeyDarkMode, []byte("true")); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(KeyDarkMode, []byte("false")); err != nil {
		t.Fatal(err)
	}

	got, err := st.Load(KeyDarkMode)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "false" {
		t.Errorf("Load = %s, want false", got)
	}
}

func TestFileStorage_Delete(t *testing.T) {
	st := newTestStorage(t)

	if err := st.Save("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Load("k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Load after delete = %v, want ErrKeyNotFound", err)
	}

	// Deleting an absent key is a no-op.
	if err := st.Delete("k"); err != nil {
		t.Errorf("Delete of absent key = %v, want nil", err)
	}
}

func TestFileStorage_KeySanitization(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStorageWithDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Save("../escape", []byte("v")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The entry must land inside the base directory.
	if _, err := os.Stat(filepath.Join(dir, "___escape.json")); err != nil {
		t.Errorf("sanitized key file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json")); err == nil {
		t.Error("key escaped the base directory")
	}
}
