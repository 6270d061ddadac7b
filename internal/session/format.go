// Package session persists sessions: the observer instant, the view and the
// full action log of the drawing.
//
// The text format is line oriented:
//
//	2015 12 05 21 30                 observer date-time (UTC)
//	812.433.1400.Pittsburgh          panX.panY.scale.location
//	draw.Betelgeuse|Bellatrix        one action per line
//	erase.Betelgeuse|Bellatrix
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/viewport"
)

// Errors reported by the loaders. Use errors.Is.
var (
	ErrNotFound    = errors.New("session not found")
	ErrParse       = errors.New("malformed session")
	ErrUnknownStar = errors.New("unknown star")
)

// ParseError locates a malformed line. Line is 1-based; 0 means the file as
// a whole.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed session: %v", e.Err)
	}
	return fmt.Sprintf("malformed session at line %d (%q): %v", e.Line, e.Text, e.Err)
}

// Unwrap lets errors.Is match both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Session is everything needed to restore a drawing.
type Session struct {
	Time     time.Time
	Pan      viewport.Point
	Scale    int
	Location string
	Actions  []annotate.Action
}

// StarSet answers whether a name is a known star.
type StarSet interface {
	Has(name string) bool
}

const dateLayout = "2006 01 02 15 04"

// Encode writes s in the text format.
func Encode(w io.Writer, s Session) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, s.Time.UTC().Format(dateLayout))
	fmt.Fprintf(bw, "%d.%d.%d.%s\n", s.Pan.X, s.Pan.Y, s.Scale, s.Location)
	for _, a := range s.Actions {
		fmt.Fprintln(bw, a.String())
	}
	return bw.Flush()
}

// EncodeString is Encode into a string.
func EncodeString(s Session) string {
	var b strings.Builder
	_ = Encode(&b, s)
	return b.String()
}

// Decode reads a session. Every star name must be in stars and the action
// log must be replayable from an empty drawing. Blank lines are ignored.
func Decode(r io.Reader, stars StarSet) (Session, error) {
	var s Session
	seen, lineNo := 0, 0
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var err error
		switch seen {
		case 0:
			s.Time, err = parseDate(text)
		case 1:
			err = parseHeader(text, &s)
		default:
			var act annotate.Action
			act, err = parseAction(text, stars)
			s.Actions = append(s.Actions, act)
		}
		if err != nil {
			if errors.Is(err, ErrUnknownStar) {
				return Session{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			return Session{}, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		seen++
	}
	if err := scanner.Err(); err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	if seen < 2 {
		return Session{}, &ParseError{Err: errors.New("missing date or view header")}
	}

	if err := annotate.New(0).Replay(s.Actions); err != nil {
		return Session{}, &ParseError{Err: err}
	}
	return s, nil
}

// DecodeString is Decode from a string.
func DecodeString(text string, stars StarSet) (Session, error) {
	return Decode(strings.NewReader(text), stars)
}

func parseDate(text string) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return time.Time{}, fmt.Errorf("date needs 5 fields, got %d", len(fields))
	}
	var v [5]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("date field %d: %w", i+1, err)
		}
		v[i] = n
	}

	t := time.Date(v[0], time.Month(v[1]), v[2], v[3], v[4], 0, 0, time.UTC)
	// time.Date normalises out-of-range fields; a real date round-trips.
	if t.Year() != v[0] || int(t.Month()) != v[1] || t.Day() != v[2] || t.Hour() != v[3] || t.Minute() != v[4] {
		return time.Time{}, fmt.Errorf("invalid date %q", text)
	}
	return t, nil
}

func parseHeader(text string, s *Session) error {
	parts := strings.SplitN(text, ".", 4)
	if len(parts) != 4 {
		return errors.New("view header needs panX.panY.scale.location")
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("pan x: %w", err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("pan y: %w", err)
	}
	scale, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", scale)
	}
	if _, err := astro.SiteByName(parts[3]); err != nil {
		return err
	}

	s.Pan = viewport.Point{X: x, Y: y}
	s.Scale = scale
	s.Location = parts[3]
	return nil
}

func parseAction(text string, stars StarSet) (annotate.Action, error) {
	kindText, lineText, ok := strings.Cut(text, ".")
	if !ok {
		return annotate.Action{}, errors.New("action needs kind.star1|star2")
	}
	kind, err := annotate.ParseKind(kindText)
	if err != nil {
		return annotate.Action{}, err
	}
	s1, s2, ok := strings.Cut(lineText, "|")
	if !ok || s1 == "" || s2 == "" {
		return annotate.Action{}, errors.New("line needs star1|star2")
	}
	for _, name := range []string{s1, s2} {
		if stars != nil && !stars.Has(name) {
			return annotate.Action{}, fmt.Errorf("%w %q", ErrUnknownStar, name)
		}
	}
	return annotate.Action{Kind: kind, Line: annotate.Line{Star1: s1, Star2: s2}}, nil
}
