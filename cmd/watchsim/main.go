package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/wristwatch/config"
	"github.com/drake/wristwatch/debug"
	"github.com/drake/wristwatch/session"
	"github.com/drake/wristwatch/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (defaults to the config directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" && os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755) == nil {
		if f, err := tea.LogToFile(cfg.LogFile, ""); err == nil {
			defer f.Close()
		}
	}

	tui := ui.NewBubbleTeaUI(tea.WithAltScreen())
	s := session.New(tui, session.Config{
		Width:       cfg.Display.Width,
		Height:      cfg.Display.Height,
		Refresh:     cfg.Refresh,
		InitFile:    cfg.InitFile,
		UserScripts: flag.Args(),
		Logger:      log.Default(),
	})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Debug || debug.Enabled() {
		debug.NewMonitor(ctx, s, nil).Start()
	}

	if err := s.Run(); err != nil {
		cancel()
		s.Close()
		fmt.Fprintln(os.Stderr, "UI error:", err)
		os.Exit(1)
	}
}
