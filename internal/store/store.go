// Package store holds the ephemeral key/value slots a session is persisted to.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Keys used by the session controller
const (
	KeyDeck   = "deck"
	KeyOpened = "opened"
	KeyIndex  = "index"
)

var (
	// ErrInvalidName indicates a session name outside [A-Za-z0-9_-]{1,64}.
	ErrInvalidName = errors.New("invalid session name")

	// ErrNotFound indicates the session directory does not exist.
	ErrNotFound = errors.New("session not found")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store is a flat string-keyed store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Clear() error
}

// ValidName reports whether name can be used as a session directory
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	data map[string]string
}

// NewMemory returns an empty Memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Clear() error {
	m.data = make(map[string]string)
	return nil
}

// File keeps one file per key inside a session directory
type File struct {
	Dir string
}

// Open returns the File store for session name under root. The directory is
// created lazily on the first Set.
func Open(root, name string) (*File, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return &File{Dir: filepath.Join(root, name)}, nil
}

func (f *File) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.Dir, key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (f *File) Set(key, value string) error {
	if err := os.MkdirAll(f.Dir, 0700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+key+".*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error writing %s: %w", key, err)
	}

	if err := os.Rename(tmpName, filepath.Join(f.Dir, key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	return nil
}

func (f *File) Clear() error {
	if err := os.RemoveAll(f.Dir); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

// List returns the names of the sessions under root, sorted
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && ValidName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes session name under root
func Remove(root, name string) error {
	f, err := Open(root, name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(f.Dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f.Clear()
}
