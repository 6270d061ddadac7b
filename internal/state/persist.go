package state

import (
	"context"
	"fmt"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/session"
)

// Store is a keyed session container such as session.Library.
type Store interface {
	Put(ctx context.Context, name string, s session.Session) error
	Get(ctx context.Context, name string, stars session.StarSet) (session.Session, error)
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot() session.Session {
	return session.Session{
		Time:     s.clock.Time(),
		Pan:      s.view.PanOffset(),
		Scale:    s.view.Scale(),
		Location: s.clock.Location().Name,
		Actions:  s.engine.Actions(),
	}
}

// Restore replaces the drawing, observer and view with saved. Nothing
// changes unless saved is fully valid.
func (s *Session) Restore(ctx context.Context, saved session.Session) error {
	site, err := astro.SiteByName(saved.Location)
	if err != nil {
		return err
	}
	for _, a := range saved.Actions {
		for _, name := range []string{a.Line.Star1, a.Line.Star2} {
			if !s.catalog.Has(name) {
				return fmt.Errorf("%w %q", session.ErrUnknownStar, name)
			}
		}
	}
	scratch := annotate.New(s.tolerance)
	if err := scratch.Replay(saved.Actions); err != nil {
		return fmt.Errorf("restoring drawing: %w", err)
	}

	scratch.SetErasing(s.engine.Erasing())
	s.engine = scratch
	s.applyView(saved)
	s.clock.SetTime(saved.Time)
	s.clock.SetLocation(site)
	return s.recompute(ctx)
}

// applyView restores a saved scale and pan. A scale outside this window's
// zoom range is clamped and the view re-centred, since the saved pan only
// makes sense at the saved scale.
func (s *Session) applyView(saved session.Session) {
	s.view.SetScale(saved.Scale)
	if s.view.Scale() != saved.Scale {
		s.view.Center()
		return
	}
	s.view.SetPan(saved.Pan)
}

// Save writes the session to a file.
func (s *Session) Save(path string) error {
	if err := session.SaveFile(path, s.Snapshot()); err != nil {
		s.log.Error("save %s: %v", path, err)
		return err
	}
	s.log.Info("saved %d actions to %s", len(s.engine.Actions()), path)
	s.addEvent(EventSaved, path)
	return nil
}

// Load reads a session file and restores it. On error the session is left
// as it was.
func (s *Session) Load(ctx context.Context, path string) error {
	saved, err := session.LoadFile(path, s.catalog)
	if err != nil {
		s.log.Warn("load %s: %v", path, err)
		return err
	}
	if err := s.Restore(ctx, saved); err != nil {
		return err
	}
	s.log.Info("loaded %d actions from %s", len(saved.Actions), path)
	s.addEvent(EventLoaded, path)
	return nil
}

// SaveTo stores the session in a library under name.
func (s *Session) SaveTo(ctx context.Context, store Store, name string) error {
	if err := store.Put(ctx, name, s.Snapshot()); err != nil {
		return err
	}
	s.addEvent(EventSaved, name)
	return nil
}

// LoadFrom restores the named session from a library.
func (s *Session) LoadFrom(ctx context.Context, store Store, name string) error {
	saved, err := store.Get(ctx, name, s.catalog)
	if err != nil {
		return err
	}
	if err := s.Restore(ctx, saved); err != nil {
		return err
	}
	s.addEvent(EventLoaded, name)
	return nil
}
