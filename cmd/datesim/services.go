package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/platform/tui"
	"github.com/vovakirdan/datesim/internal/storage"
	"github.com/vovakirdan/datesim/internal/telemetry"
)

// openServices opens the save database and, when enabled, a telemetry file
// for a local session. Failures disable the feature instead of aborting.
// The returned cleanup function must be called when the session ends.
func openServices(logger *log.Logger, slot string) (tui.Services, func()) {
	svc := tui.Services{
		Logger:   logger,
		Slot:     slot,
		Autosave: appConfig.UI.Autosave,
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without storage - the game still works
	} else {
		svc.Store = store
	}

	if appConfig.Telemetry.Enabled {
		recorder, err := telemetry.NewRecorder(appConfig.Telemetry.Dir, uuid.NewString())
		if err != nil {
			logger.Warn("telemetry disabled", "error", err)
		} else {
			svc.Recorder = recorder
			logger.Info("writing telemetry", "path", recorder.Path())
		}
	}

	cleanup := func() {
		if svc.Recorder != nil {
			svc.Recorder.Close()
		}
		if svc.Store != nil {
			svc.Store.Close()
		}
	}
	return svc, cleanup
}

// openStore opens the save database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		fatalf("opening save database: %v", err)
	}
	return store
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = appConfig.UI.TickRate
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
