package state

import (
	"context"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/quiz"
)

// QuizActive reports whether a quiz is running.
func (s *Session) QuizActive() bool { return s.quiz != nil }

// QuizStatus returns the quiz prompt or last hint, and whether a quiz is
// running.
func (s *Session) QuizStatus() (string, bool) {
	if s.quiz == nil {
		return "", false
	}
	return s.quiz.Status(), true
}

func (s *Session) startQuiz(ctx context.Context) error {
	if len(s.constellations) == 0 {
		return quiz.ErrNoConstellations
	}
	s.quiz = quiz.New(s.constellations)
	c, _ := s.quiz.Current()
	s.addEvent(EventQuizStarted, c.Name)
	return s.showConstellation(ctx)
}

func (s *Session) checkQuiz() {
	if s.quiz == nil {
		return
	}
	h, ok := s.quiz.Check(s.engine.Vertices(), s.engine.Edges())
	if !ok {
		return
	}
	if h.Correct() {
		c, _ := s.quiz.Current()
		s.addEvent(EventQuizCorrect, c.Name)
		return
	}
	s.addEvent(EventQuizHint, h.String())
}

func (s *Session) nextQuiz(ctx context.Context) error {
	if s.quiz == nil || !s.quiz.Advance() {
		return nil
	}
	s.engine.Clear()
	if s.quiz.Done() {
		s.addEvent(EventQuizComplete, quiz.CompletedMessage)
		return nil
	}
	return s.showConstellation(ctx)
}

func (s *Session) skipQuiz(ctx context.Context) error {
	if s.quiz == nil || s.quiz.Done() {
		return nil
	}
	s.quiz.Skip()
	s.engine.Clear()
	if s.quiz.Done() {
		s.addEvent(EventQuizComplete, quiz.CompletedMessage)
		return nil
	}
	return s.showConstellation(ctx)
}

func (s *Session) restartQuiz(ctx context.Context) error {
	if s.quiz == nil {
		return s.startQuiz(ctx)
	}
	s.quiz.Reset()
	c, _ := s.quiz.Current()
	s.addEvent(EventQuizStarted, c.Name)
	return s.showConstellation(ctx)
}

// QuizProgress returns the 1-based number of the constellation being asked
// and how many there are. Once the quiz is done the number equals the total.
func (s *Session) QuizProgress() (int, int, bool) {
	if s.quiz == nil {
		return 0, 0, false
	}
	return min(s.quiz.Index()+1, s.quiz.Len()), s.quiz.Len(), true
}

// showConstellation clears the drawing, stops the clock and moves the
// observer to where the current constellation was drawn. The clock stays
// paused so the reference stars hold still while they are drawn.
func (s *Session) showConstellation(ctx context.Context) error {
	c, ok := s.quiz.Current()
	if !ok {
		return nil
	}
	s.engine.Clear()
	s.clock.SetMode(clock.Paused)
	if site, err := astro.SiteByName(c.View.Location); err == nil {
		s.clock.SetLocation(site)
	}
	s.clock.SetTime(c.View.Time)
	s.applyView(c.View)
	return s.recompute(ctx)
}

// QuizSolved reports whether the last check of the current constellation
// was correct, or the quiz is complete.
func (s *Session) QuizSolved() bool {
	if s.quiz == nil {
		return false
	}
	if s.quiz.Done() {
		return true
	}
	h, ok := s.quiz.LastHint()
	return ok && h.Correct()
}
