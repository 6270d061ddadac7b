package quiz

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/session"
)

//go:embed constellations/*.txt
var embedded embed.FS

// ErrNoConstellations is returned when a directory holds no reference files.
var ErrNoConstellations = errors.New("no reference constellations")

// Constellation is an immutable reference drawing. View carries the time,
// place and framing the reference was drawn at, so the quiz can show the
// user the same sky.
type Constellation struct {
	Name string
	View session.Session

	vertices map[string]struct{}
	edges    map[annotate.Line]struct{}
}

// NewConstellation builds a reference from a decoded session by replaying its
// actions.
func NewConstellation(name string, s session.Session) (Constellation, error) {
	e := annotate.New(0)
	if err := e.Replay(s.Actions); err != nil {
		return Constellation{}, fmt.Errorf("constellation %s: %w", name, err)
	}
	if len(e.Lines()) == 0 {
		return Constellation{}, fmt.Errorf("constellation %s has no lines", name)
	}
	s.Actions = nil
	return Constellation{
		Name:     name,
		View:     s,
		vertices: e.Vertices(),
		edges:    e.Edges(),
	}, nil
}

// Vertices returns the reference stars, sorted.
func (c Constellation) Vertices() []string {
	out := make([]string, 0, len(c.vertices))
	for v := range c.vertices {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Edges returns the reference lines in canonical form, sorted.
func (c Constellation) Edges() []annotate.Line {
	out := make([]annotate.Line, 0, len(c.edges))
	for l := range c.edges {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Diagnose scores a drawing against c.
func (c Constellation) Diagnose(curV map[string]struct{}, curE map[annotate.Line]struct{}) Hint {
	return Diagnose(curV, curE, c.vertices, c.edges)
}

// Builtin loads the reference constellations shipped with the binary, in
// quiz order.
func Builtin(stars session.StarSet) ([]Constellation, error) {
	sub, err := fs.Sub(embedded, "constellations")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, stars)
}

// LoadFS loads every *.txt file at the root of fsys, ordered by file name.
// A leading "NN-" on the file name only sets the order and is dropped from
// the constellation name.
func LoadFS(fsys fs.FS, stars session.StarSet) ([]Constellation, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading constellations: %w", err)
	}

	var out []Constellation
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		f, err := fsys.Open(entry.Name())
		if err != nil {
			return nil, err
		}
		s, err := session.Decode(f, stars)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		c, err := NewConstellation(constellationName(entry.Name()), s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoConstellations
	}
	return out, nil
}

// Find returns the constellation with the given name, ignoring case.
func Find(list []Constellation, name string) (Constellation, bool) {
	for _, c := range list {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Constellation{}, false
}

func constellationName(file string) string {
	name := strings.TrimSuffix(file, path.Ext(file))
	if prefix, rest, ok := strings.Cut(name, "-"); ok && isDigits(prefix) {
		name = rest
	}
	return name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
