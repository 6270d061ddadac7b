// Package config holds run-time settings. Values come from DefaultConfig,
// then SKYCHART_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/viewport"
)

// StartLayout is the layout of Config.Start, the same as the save file's
// date line.
const StartLayout = "2006 01 02 15 04"

// Config holds application settings.
type Config struct {
	Location string
	Start    string // observer start time in UTC; empty means now
	Mode     string // clock mode name

	// Terminal cells are the pixels of the sky map, so the zoom range is
	// much smaller than a desktop window's.
	Scale    int
	MinZoom  int
	MaxZoom  int
	ZoomStep int
	PanStep  int
	Margin   int

	TickInterval time.Duration

	SaveFile    string
	LibraryPath string
	QuizDir     string // empty means the built-in constellations

	LogLevel string
	LogFile  string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Location:     astro.DefaultSiteName,
		Mode:         clock.FastForward.String(),
		Scale:        60,
		MinZoom:      20,
		MaxZoom:      400,
		ZoomStep:     5,
		PanStep:      2,
		Margin:       2,
		TickInterval: 100 * time.Millisecond,
		SaveFile:     "savedata.txt",
		LibraryPath:  "skychart.db",
		LogLevel:     "info",
		LogFile:      "skychart.log",
	}
}

// FromEnv returns cfg with any SKYCHART_* variables applied. Unparseable
// numbers are ignored.
func FromEnv(cfg Config) Config {
	cfg.Location = getEnv("SKYCHART_LOCATION", cfg.Location)
	cfg.Start = getEnv("SKYCHART_START", cfg.Start)
	cfg.Mode = getEnv("SKYCHART_MODE", cfg.Mode)
	cfg.Scale = getEnvAsInt("SKYCHART_SCALE", cfg.Scale)
	cfg.ZoomStep = getEnvAsInt("SKYCHART_ZOOM_STEP", cfg.ZoomStep)
	cfg.PanStep = getEnvAsInt("SKYCHART_PAN_STEP", cfg.PanStep)
	cfg.TickInterval = time.Duration(getEnvAsInt("SKYCHART_TICK_MS", int(cfg.TickInterval/time.Millisecond))) * time.Millisecond
	cfg.SaveFile = getEnv("SKYCHART_SAVE_FILE", cfg.SaveFile)
	cfg.LibraryPath = getEnv("SKYCHART_LIBRARY", cfg.LibraryPath)
	cfg.QuizDir = getEnv("SKYCHART_QUIZ_DIR", cfg.QuizDir)
	cfg.LogLevel = getEnv("SKYCHART_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("SKYCHART_LOG_FILE", cfg.LogFile)
	return cfg
}

// Validate checks that the settings can start a session.
func (c Config) Validate() error {
	var errs []error
	if _, err := astro.SiteByName(c.Location); err != nil {
		errs = append(errs, err)
	}
	// ParseMode falls back to paused, so unknown names are caught here.
	if c.Mode != "" && !knownMode(c.Mode) {
		errs = append(errs, fmt.Errorf("unknown clock mode %q", c.Mode))
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		errs = append(errs, fmt.Errorf("invalid zoom range [%d, %d]", c.MinZoom, c.MaxZoom))
	}
	if c.Scale < c.MinZoom || c.Scale > c.MaxZoom {
		errs = append(errs, fmt.Errorf("scale %d outside zoom range [%d, %d]", c.Scale, c.MinZoom, c.MaxZoom))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if _, err := c.StartTime(time.Time{}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// StartTime returns the configured observer start, or now if none is set.
func (c Config) StartTime(now time.Time) (time.Time, error) {
	if c.Start == "" {
		return now.UTC(), nil
	}
	t, err := time.ParseInLocation(StartLayout, c.Start, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("start time %q: want %q", c.Start, StartLayout)
	}
	return t, nil
}

// ClockMode returns the parsed clock mode.
func (c Config) ClockMode() clock.Mode {
	return clock.ParseMode(c.Mode)
}

// Viewport returns the viewport settings for a window of the given size.
func (c Config) Viewport(width, height int) viewport.Config {
	return viewport.Config{
		Scale:      c.Scale,
		MinZoom:    c.MinZoom,
		MaxZoom:    c.MaxZoom,
		Margin:     c.Margin,
		ViewWidth:  width,
		ViewHeight: height,
	}
}

func knownMode(s string) bool {
	switch s {
	case "paused", "pause", "fast-forward", "fastforward", "ff", "real-time", "realtime", "live":
		return true
	}
	return false
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
