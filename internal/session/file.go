package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFile is the save file used when no path is given.
const DefaultFile = "savedata.txt"

// SaveFile writes s to path, replacing any previous file only once the new
// content is fully written.
func SaveFile(path string, s Session) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".skychart-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

// LoadFile reads a session from path. A missing file is ErrNotFound.
func LoadFile(path string, stars StarSet) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Session{}, fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, stars)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
