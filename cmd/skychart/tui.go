package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/session"
	"github.com/litescript/skychart/internal/ui"
)

// The real size arrives with the first WindowSizeMsg.
const (
	initialWidth  = 80
	initialHeight = 21
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("skychart starting at %s", cfg.Location)

	sess, err := newSession(ctx, cfg, initialWidth, initialHeight, logger)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	opts := ui.Options{
		SavePath:     cfg.SaveFile,
		PanStep:      cfg.PanStep,
		ZoomStep:     cfg.ZoomStep,
		TickInterval: cfg.TickInterval,
		Labels:       labelMode(),
		Log:          logger,
		SessionName:  sessionName,
	}

	// The library is optional; without it the S/O keys report so.
	if lib, err := session.OpenLibrary(cfg.LibraryPath); err != nil {
		logger.Warn("session library unavailable: %v", err)
	} else {
		defer lib.Close()
		opts.Library = lib
	}

	model := ui.New(ctx, sess, opts)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil // interrupted by a signal
	}
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Info("skychart stopped")
	return nil
}
