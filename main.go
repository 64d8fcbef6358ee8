package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"prodflow/internal/storage"
	"prodflow/internal/tracker"
	"prodflow/internal/tui"
)

func newLogger() (*slog.Logger, func()) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	path := filepath.Join(dir, "prodflow", "prodflow.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

func main() {
	logger, closeLog := newLogger()
	defer closeLog()

	// A broken database degrades to an in-memory session; the app still
	// runs, it just won't remember anything.
	var store storage.Store
	dbPath, err := storage.DefaultDBPath()
	if err == nil {
		db, openErr := storage.New(dbPath, logger)
		if openErr != nil {
			err = openErr
		} else {
			store = db
		}
	}
	if store == nil {
		logger.Warn("falling back to in-memory storage", "error", err)
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	t := tracker.New(store, tracker.WithLogger(logger))
	app := tui.NewApp(t)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
