package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	location    TEXT NOT NULL,
	observed_at TEXT NOT NULL,
	actions     INTEGER NOT NULL,
	body        TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// Library stores named sessions in a SQLite database. Each row keeps the
// text encoding, so an entry can be exported back to a save file verbatim.
type Library struct {
	conn *sql.DB
	Path string
}

// Entry describes a stored session without decoding it.
type Entry struct {
	ID         string
	Name       string
	Location   string
	ObservedAt time.Time
	Actions    int
	UpdatedAt  time.Time
}

// OpenLibrary opens (creating if needed) the library at path.
func OpenLibrary(path string) (*Library, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	// One connection keeps ":memory:" databases shared and writes serialised.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Library{conn: conn, Path: path}, nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.conn.Close()
}

// Put stores s under name, replacing an existing entry of that name.
func (l *Library) Put(ctx context.Context, name string, s Session) error {
	if name == "" {
		return errors.New("session name is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := l.conn.ExecContext(ctx, `
		INSERT INTO sessions (id, name, location, observed_at, actions, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			location = excluded.location,
			observed_at = excluded.observed_at,
			actions = excluded.actions,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, uuid.NewString(), name, s.Location, s.Time.UTC().Format(time.RFC3339),
		len(s.Actions), EncodeString(s), now)
	if err != nil {
		return fmt.Errorf("storing session %q: %w", name, err)
	}
	return nil
}

// Get loads and decodes the named session.
func (l *Library) Get(ctx context.Context, name string, stars StarSet) (Session, error) {
	var body string
	err := l.conn.QueryRowContext(ctx, `SELECT body FROM sessions WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session %q: %w", name, err)
	}
	s, err := DecodeString(body, stars)
	if err != nil {
		return Session{}, fmt.Errorf("session %q: %w", name, err)
	}
	return s, nil
}

// List returns all entries, most recently updated first.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.conn.QueryContext(ctx, `
		SELECT id, name, location, observed_at, actions, updated_at
		FROM sessions ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                 Entry
			observed, updated string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Location, &observed, &e.Actions, &updated); err != nil {
			return nil, err
		}
		e.ObservedAt, _ = time.Parse(time.RFC3339, observed)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the named session.
func (l *Library) Delete(ctx context.Context, name string) error {
	res, err := l.conn.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting session %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
