// Package state owns one planetarium session: the observer clock, the
// viewport, the star catalog, the drawing and the quiz. All mutation goes
// through Tick and Dispatch on a single goroutine, so nothing here locks.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/catalog"
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/logging"
	"github.com/litescript/skychart/internal/quiz"
	"github.com/litescript/skychart/internal/session"
	"github.com/litescript/skychart/internal/viewport"
)

// ErrUnknownCommand is returned by Dispatch for a nil command.
var ErrUnknownCommand = errors.New("unknown command")

// Config holds configuration for a session.
type Config struct {
	Site      astro.Site
	Start     time.Time
	Mode      clock.Mode
	Viewport  viewport.Config
	Tolerance float64
	MaxEvents int

	Stars   []astro.BrightStar
	Almanac astro.Almanac // nil means a ComputedAlmanac over Stars

	// Constellations are the quiz items; the quiz is unavailable without
	// them.
	Constellations []quiz.Constellation

	// LabelWidth measures a star's drawn label in cells for hit testing,
	// zero when the label is hidden. Nil means only discs are clickable.
	LabelWidth func(star *catalog.Star) int

	Log *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Site:      astro.DefaultSite(),
		Start:     time.Now().UTC(),
		Mode:      clock.FastForward,
		Viewport:  viewport.DefaultConfig(),
		Tolerance: annotate.DefaultTolerance,
		MaxEvents: 50,
		Stars:     astro.BrightStars(),
		LabelWidth: func(star *catalog.Star) int {
			return utf8.RuneCountInString(star.Name)
		},
	}
}

// Session is the controller tying the components together.
type Session struct {
	clock   *clock.Clock
	view    *viewport.Viewport
	catalog *catalog.Catalog
	engine  *annotate.Engine
	almanac astro.Almanac

	constellations []quiz.Constellation
	quiz           *quiz.Quiz

	tolerance  float64
	labelWidth func(*catalog.Star) int

	pointer    viewport.Point
	hasPointer bool

	lastErr error
	events  eventLog
	log     *logging.Logger
}

// New creates a session and computes the first star positions.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if len(cfg.Stars) == 0 {
		cfg.Stars = astro.BrightStars()
	}
	if cfg.Almanac == nil {
		cfg.Almanac = astro.NewComputedAlmanac(cfg.Stars)
	}
	if cfg.Site.Name == "" {
		cfg.Site = astro.DefaultSite()
	}
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}

	c := clock.New(cfg.Start, cfg.Site)
	c.SetMode(cfg.Mode)

	s := &Session{
		clock:          c,
		view:           viewport.New(cfg.Viewport),
		catalog:        catalog.New(cfg.Stars),
		engine:         annotate.New(cfg.Tolerance),
		almanac:        cfg.Almanac,
		constellations: cfg.Constellations,
		tolerance:      cfg.Tolerance,
		labelWidth:     cfg.LabelWidth,
		events:         newEventLog(cfg.MaxEvents),
		log:            cfg.Log.With("state"),
	}
	if err := s.recompute(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Tick runs one frame: advance the clock, recompute every star, then move
// the pending line's loose end to the pointer. An almanac failure is
// returned and kept as LastError; positions from the failed tick are not
// used.
func (s *Session) Tick(ctx context.Context) error {
	s.clock.Tick()
	if err := s.recompute(ctx); err != nil {
		return err
	}
	if s.hasPointer {
		s.engine.MovePointer(s.pointer)
	}
	return nil
}

func (s *Session) recompute(ctx context.Context) error {
	err := s.catalog.Recompute(ctx, s.almanac, s.clock.Location(), s.clock.Time(), s.view.Scale())
	if err != nil {
		if s.lastErr == nil || s.lastErr.Error() != err.Error() {
			s.log.Error("recompute at %s: %v", s.clock.Time().Format(time.RFC3339), err)
			s.addEvent(EventTickFailed, err.Error())
		}
		s.lastErr = err
		return fmt.Errorf("tick: %w", err)
	}
	s.lastErr = nil
	return nil
}

// Dispatch applies a command. Only commands that reach the almanac or name
// something that may not exist can fail.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case Zoom:
		before := s.view.Scale()
		s.view.Zoom(c.Delta)
		if s.view.Scale() != before {
			return s.recompute(ctx)
		}
	case Pan:
		s.view.Pan(c.DX, c.DY)
	case SelectStar:
		if !s.catalog.Has(c.Name) {
			return fmt.Errorf("select %q: %w", c.Name, session.ErrUnknownStar)
		}
		s.engine.SelectStar(c.Name)
	case Erase:
		s.eraseAt(c.At)
	case Undo:
		s.engine.Undo()
	case Redo:
		s.engine.Redo()
	case Clear:
		s.engine.Clear()
	case SetMode:
		s.clock.SetMode(c.Mode)
		s.log.Debug("clock mode %s", c.Mode)
	case ToggleErase:
		s.engine.SetErasing(!s.engine.Erasing())
	case CancelPending:
		s.engine.CancelPending()
	case ClickAt:
		s.click(c.At)
	case MovePointer:
		s.pointer, s.hasPointer = c.At, true
		s.engine.MovePointer(c.At)
	case SetLocation:
		return s.setLocation(ctx, c.Name)
	case CenterView:
		s.view.Center()
	case Resize:
		s.view.Resize(c.Width, c.Height)
	case StartQuiz:
		return s.startQuiz(ctx)
	case CheckQuiz:
		s.checkQuiz()
	case NextQuiz:
		return s.nextQuiz(ctx)
	case SkipQuiz:
		return s.skipQuiz(ctx)
	case RestartQuiz:
		return s.restartQuiz(ctx)
	case StopQuiz:
		s.quiz = nil
		s.engine.Clear()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}

func (s *Session) click(p viewport.Point) {
	if s.engine.Erasing() {
		s.eraseAt(p)
		return
	}
	if star, ok := s.catalog.StarAt(p, s.view, s.labelWidth); ok {
		s.engine.SelectStar(star.Name)
	}
}

func (s *Session) eraseAt(p viewport.Point) {
	s.engine.EraseAt(p, func(name string) (viewport.Point, bool) {
		return s.catalog.Locate(name, s.view)
	})
}

func (s *Session) setLocation(ctx context.Context, name string) error {
	site, err := astro.SiteByName(name)
	if err != nil {
		return err
	}
	s.clock.SetLocation(site)
	s.addEvent(EventLocation, site.Name)
	return s.recompute(ctx)
}

// StarAt returns the star under a screen point, if any.
func (s *Session) StarAt(p viewport.Point) (*catalog.Star, bool) {
	return s.catalog.StarAt(p, s.view, s.labelWidth)
}

// SetLabelWidth replaces the label measure used by clicks, for when the
// drawn labels change.
func (s *Session) SetLabelWidth(fn func(*catalog.Star) int) { s.labelWidth = fn }

// Locate returns a star's screen position if it is above the horizon.
func (s *Session) Locate(name string) (viewport.Point, bool) {
	return s.catalog.Locate(name, s.view)
}

// Time returns the observer time.
func (s *Session) Time() time.Time { return s.clock.Time() }

// Mode returns the clock mode.
func (s *Session) Mode() clock.Mode { return s.clock.Mode() }

// Location returns the observer site.
func (s *Session) Location() astro.Site { return s.clock.Location() }

// View returns a copy of the viewport.
func (s *Session) View() viewport.Viewport { return *s.view }

// Stars returns the catalog stars in order. Callers must not modify them.
func (s *Session) Stars() []*catalog.Star { return s.catalog.Stars() }

// Catalog returns the star catalog, for name checks.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Lines returns the completed lines.
func (s *Session) Lines() []annotate.Line { return s.engine.Lines() }

// Pending returns the half-drawn line and its loose end, if any.
func (s *Session) Pending() (annotate.Line, viewport.Point, bool) {
	l, ok := s.engine.Pending()
	if !ok {
		return annotate.Line{}, viewport.Point{}, false
	}
	end, ok := s.engine.PendingEnd()
	if !ok {
		end, _ = s.catalog.Locate(l.Star1, s.view)
	}
	return l, end, true
}

// Erasing reports whether clicks erase.
func (s *Session) Erasing() bool { return s.engine.Erasing() }

// CanUndo reports whether there is an action to undo.
func (s *Session) CanUndo() bool { return s.engine.CanUndo() }

// CanRedo reports whether there is an action to redo.
func (s *Session) CanRedo() bool { return s.engine.CanRedo() }

// Twilight reports how dark the observer's sky is.
func (s *Session) Twilight() astro.Twilight {
	return astro.TwilightAt(astro.SunHorizon(s.clock.Location(), s.clock.Time()).Altitude)
}

// Separation returns the angle in degrees between two named stars as of the
// last tick.
func (s *Session) Separation(a, b string) (float64, bool) {
	sa, ok := s.catalog.Lookup(a)
	if !ok {
		return 0, false
	}
	sb, ok := s.catalog.Lookup(b)
	if !ok {
		return 0, false
	}
	return astro.Separation(sa.Horizon, sb.Horizon), true
}

// LastError returns the error from the most recent recompute, if it failed.
func (s *Session) LastError() error { return s.lastErr }

// RecentEvents returns the last n events, oldest first.
func (s *Session) RecentEvents(n int) []Event { return s.events.recent(n) }

func (s *Session) addEvent(t EventType, detail string) {
	s.events.add(Event{Type: t, Timestamp: time.Now(), Detail: detail})
}
