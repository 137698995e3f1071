// Package statefile persists the tracker state as a JSON document.
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/timetrack/internal/store"
)

const (
	dirMode         = 0o755
	fileMode        = 0o644
	tempFilePattern = ".state-*.json.tmp"
)

// File is the state document at a fixed path.
type File struct {
	path string
	now  func() time.Time
}

type Option func(*File)

// WithClock overrides the clock used to date a document that carries no date.
func WithClock(now func() time.Time) Option {
	return func(f *File) {
		if now != nil {
			f.now = now
		}
	}
}

func New(path string, opts ...Option) *File {
	f := &File{path: path, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *File) Path() string { return f.path }

// Load reads and migrates the document. A missing file is created holding an
// empty document.
func (f *File) Load() (store.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
			return store.State{}, fmt.Errorf("create state directory: %w", err)
		}
		data = []byte("{}")
		if err := os.WriteFile(f.path, data, fileMode); err != nil {
			return store.State{}, fmt.Errorf("create state file: %w", err)
		}
	} else if err != nil {
		return store.State{}, fmt.Errorf("read state file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return store.State{}, fmt.Errorf("decode state file %s: %w", f.path, err)
	}
	st, err := rec.toState(store.DateOf(f.now()))
	if err != nil {
		return store.State{}, fmt.Errorf("decode state file %s: %w", f.path, err)
	}
	return st, nil
}

// Save replaces the document with st. The new content is written to a
// sibling temp file first and renamed over the old one.
func (f *File) Save(st store.State) error {
	data, err := json.MarshalIndent(fromState(st), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	cleanup = false
	return nil
}
