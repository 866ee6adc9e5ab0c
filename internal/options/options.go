// Package options persists per-show analysis options in a JSON file keyed by
// show name.
package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmunix/mediascan/pkg/release"
)

// Show holds the options for one show.
type Show struct {
	Locked bool `json:"locked"`
}

// File is the in-memory view of the options file.
type File struct {
	path   string
	shows  map[string]*Show
	logger *slog.Logger
}

// Load reads the options file at path. A missing file yields an empty set.
func Load(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{
		path:   path,
		shows:  make(map[string]*Show),
		logger: logger.With("component", "options"),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	if err := json.Unmarshal(data, &f.shows); err != nil {
		return nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	if f.shows == nil {
		f.shows = make(map[string]*Show)
	}
	for name, s := range f.shows {
		if s == nil {
			f.shows[name] = &Show{}
		}
	}
	return f, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Ensure registers name with default (unlocked) options if it is not already
// present. It reports whether a new entry was created. A new show whose name
// closely resembles a locked show logs a hint, since that usually means the
// show directory was renamed.
func (f *File) Ensure(name string) bool {
	if _, ok := f.shows[name]; ok {
		return false
	}
	if hint, ok := f.RenameHint(name); ok {
		f.logger.Info("new show resembles a locked show", "show", name, "locked_show", hint)
	}
	f.shows[name] = &Show{}
	return true
}

// RenameHint returns the locked show most similar to name, if any is similar
// enough to suggest a rename.
func (f *File) RenameHint(name string) (string, bool) {
	var locked []string
	for n, s := range f.shows {
		if s.Locked {
			locked = append(locked, n)
		}
	}
	sort.Strings(locked)
	m := release.MatchShow(name, locked)
	return m.Name, m.Similar()
}

// IsLocked reports whether analysis output is suppressed for name.
func (f *File) IsLocked(name string) bool {
	s, ok := f.shows[name]
	return ok && s.Locked
}

// SetLocked sets the locked flag, creating the entry if needed.
func (f *File) SetLocked(name string, locked bool) {
	s, ok := f.shows[name]
	if !ok {
		s = &Show{}
		f.shows[name] = s
	}
	s.Locked = locked
}

// Get returns a copy of the options for name.
func (f *File) Get(name string) (Show, bool) {
	s, ok := f.shows[name]
	if !ok {
		return Show{}, false
	}
	return *s, true
}

// Names returns all registered show names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.shows))
	for n := range f.shows {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Save rewrites the options file. The file is written to a temporary sibling
// and renamed into place.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f.shows, "", "    ")
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".mediaopts-*.json")
	if err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write options: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	return nil
}
