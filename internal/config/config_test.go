package config

import (
	"testing"
	"time"

	"github.com/litescript/skychart/internal/clock"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.ClockMode() != clock.FastForward {
		t.Errorf("ClockMode() = %v, want fast-forward", cfg.ClockMode())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SKYCHART_LOCATION", "Madrid")
	t.Setenv("SKYCHART_SCALE", "120")
	t.Setenv("SKYCHART_TICK_MS", "250")
	t.Setenv("SKYCHART_PAN_STEP", "not-a-number")
	t.Setenv("SKYCHART_MODE", "live")

	cfg := FromEnv(DefaultConfig())

	if cfg.Location != "Madrid" {
		t.Errorf("Location = %q, want Madrid", cfg.Location)
	}
	if cfg.Scale != 120 {
		t.Errorf("Scale = %d, want 120", cfg.Scale)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s, want 250ms", cfg.TickInterval)
	}
	if cfg.PanStep != DefaultConfig().PanStep {
		t.Errorf("PanStep = %d, want default", cfg.PanStep)
	}
	if cfg.ClockMode() != clock.RealTime {
		t.Errorf("ClockMode() = %v, want real-time", cfg.ClockMode())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown location", func(c *Config) { c.Location = "Atlantis" }},
		{"unknown mode", func(c *Config) { c.Mode = "rewind" }},
		{"scale above range", func(c *Config) { c.Scale = c.MaxZoom + 1 }},
		{"inverted zoom range", func(c *Config) { c.MinZoom, c.MaxZoom = 50, 10 }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"bad start", func(c *Config) { c.Start = "yesterday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestStartTime(t *testing.T) {
	now := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)

	cfg := DefaultConfig()
	got, err := cfg.StartTime(now)
	if err != nil || !got.Equal(now) {
		t.Errorf("StartTime() with no start = %v, %v", got, err)
	}

	cfg.Start = "2015 12 05 21 30"
	got, err = cfg.StartTime(now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2015, 12, 5, 21, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartTime() = %v, want %v", got, want)
	}
}

func TestViewport(t *testing.T) {
	vc := DefaultConfig().Viewport(80, 22)
	if vc.ViewWidth != 80 || vc.ViewHeight != 22 || vc.Scale != 60 {
		t.Errorf("Viewport() = %+v", vc)
	}
}
