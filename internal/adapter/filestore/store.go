// Package filestore writes snapshot artifacts to a local output directory.
//
// The pipeline produces a small fixed set of files (JSON documents, plain
// text bulletins, radar imagery) that downstream consumers read directly
// from disk. Writes go through a temp file and rename so readers never see
// a partially written artifact.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists artifacts under a single output directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the output directory if needed and returns a Store
// rooted at it.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Path returns the absolute path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteJSON marshals v with indentation and writes it to name.
func (s *Store) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.WriteBytes(name, append(data, '\n'))
}

// WriteText writes a plain text artifact.
func (s *Store) WriteText(name, text string) error {
	return s.WriteBytes(name, []byte(text))
}

// WriteBytes writes raw bytes to name atomically.
func (s *Store) WriteBytes(name string, data []byte) error {
	target := s.Path(name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmpName := tmp.Name()

	// CreateTemp files are 0600; the dashboard reads these as another user.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}

	s.logger.Debug("wrote artifact", "name", name, "bytes", len(data))
	return nil
}

// Remove deletes a named artifact. A missing file is not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
