package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/catalog"
	"github.com/litescript/skychart/internal/config"
	"github.com/litescript/skychart/internal/logging"
	"github.com/litescript/skychart/internal/quiz"
	"github.com/litescript/skychart/internal/state"
	"github.com/litescript/skychart/internal/ui"
)

// Flag values. Only flags set on the command line override the
// environment; see loadConfig.
var (
	flagLocation string
	flagStart    string
	flagMode     string
	flagScale    int
	flagSaveFile string
	flagLibrary  string
	flagQuizDir  string
	flagLogLevel string
	flagLogFile  string
	labelFlag    string
	sessionName  string
)

func bindConfigFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.PersistentFlags()
	f.StringVar(&flagLocation, "location", def.Location, "Observer site")
	f.StringVar(&flagStart, "start", "", "Start time in UTC as \""+config.StartLayout+"\" (default now)")
	f.StringVar(&flagMode, "mode", def.Mode, "Clock mode: paused, fast-forward, real-time")
	f.IntVar(&flagScale, "scale", def.Scale, "Initial zoom (dome radius in cells)")
	f.StringVar(&flagSaveFile, "save-file", def.SaveFile, "Save file for the s/o keys")
	f.StringVar(&flagLibrary, "library", def.LibraryPath, "SQLite session library")
	f.StringVar(&flagQuizDir, "quiz-dir", "", "Directory of reference constellations (default built-in)")
	f.StringVar(&flagLogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&flagLogFile, "log-file", def.LogFile, "Log file for the interactive UI")
	f.StringVar(&labelFlag, "labels", "bright", "Star labels: off, bright, all")
}

// loadConfig layers defaults, SKYCHART_* variables and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv(config.DefaultConfig())

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("location", func() { cfg.Location = flagLocation })
	set("start", func() { cfg.Start = flagStart })
	set("mode", func() { cfg.Mode = flagMode })
	set("scale", func() { cfg.Scale = flagScale })
	set("save-file", func() { cfg.SaveFile = flagSaveFile })
	set("library", func() { cfg.LibraryPath = flagLibrary })
	set("quiz-dir", func() { cfg.QuizDir = flagQuizDir })
	set("log-level", func() { cfg.LogLevel = flagLogLevel })
	set("log-file", func() { cfg.LogFile = flagLogFile })

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// newSession builds a session for a width x height sky window.
func newSession(ctx context.Context, cfg config.Config, width, height int, log *logging.Logger) (*state.Session, error) {
	site, err := astro.SiteByName(cfg.Location)
	if err != nil {
		return nil, err
	}
	start, err := cfg.StartTime(time.Now())
	if err != nil {
		return nil, err
	}

	stars := astro.BrightStars()
	constellations, err := loadConstellations(cfg, catalog.New(stars))
	if err != nil {
		// The sky map works without a quiz.
		log.Warn("quiz unavailable: %v", err)
	}

	sc := state.DefaultConfig()
	sc.Site = site
	sc.Start = start
	sc.Mode = cfg.ClockMode()
	sc.Viewport = cfg.Viewport(width, height)
	sc.Stars = stars
	sc.Constellations = constellations
	sc.Log = log
	return state.New(ctx, sc)
}

func loadConstellations(cfg config.Config, stars *catalog.Catalog) ([]quiz.Constellation, error) {
	if cfg.QuizDir == "" {
		return quiz.Builtin(stars)
	}
	return quiz.LoadFS(os.DirFS(cfg.QuizDir), stars)
}

// openLog opens the UI's log file. An empty path discards logs.
func openLog(path, level string) (*logging.Logger, func() error, error) {
	if path == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	return logging.OpenFile(path, logging.ParseLevel(level))
}

// stderrLogger is used by the headless commands, which keep the terminal.
func stderrLogger(cfg config.Config) *logging.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}

func labelMode() ui.LabelMode {
	return ui.ParseLabelMode(labelFlag)
}
