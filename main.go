// EarthGPT TUI - A terminal interface for satellite imagery chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/earthwatch/earthgpt-tui/internal/cloud"
	"github.com/earthwatch/earthgpt-tui/internal/config"
	"github.com/earthwatch/earthgpt-tui/internal/storage"
	"github.com/earthwatch/earthgpt-tui/internal/store"
	"github.com/earthwatch/earthgpt-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.earthgpt/config.toml)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("earthgpt %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; route the standard logger to a file.
	if cfgPath, err := config.ConfigPath(); err == nil {
		logPath := filepath.Join(filepath.Dir(cfgPath), "earthgpt.log")
		if f, err := tea.LogToFile(logPath, "earthgpt"); err == nil {
			defer f.Close()
		} else {
			log.SetOutput(os.Stderr)
		}
	}

	var st storage.Storage
	if cfg.StateDir != "" {
		fs, err := storage.NewFileStorageWithDir(cfg.StateDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		st = fs
	} else {
		fs, err := storage.NewFileStorage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		st = fs
	}

	sessions := store.New(st, store.Config{
		MaxChats:           cfg.MaxChats,
		MaxMessagesPerChat: cfg.MaxMessagesPerChat,
		DefaultDarkMode:    termenv.HasDarkBackground(),
	})

	client := cloud.New(cfg)
	if !client.IsConfigured() {
		fmt.Fprintf(os.Stderr, "Warning: no API key configured; set %s to enable responses.\n", config.EnvAPIKey)
	}

	program := tea.NewProgram(ui.New(sessions, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration from the given path, or the
// default location when the path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
