package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StateStore persists the timer State to disk.
type StateStore interface {
	Load() (*State, error) // missing or corrupt file yields Idle, not an error
	Save(s *State) error
	Delete() error
	Path() string
}

// diskStore is the concrete StateStore that writes to the XDG data directory.
type diskStore struct {
	path string // full path to session.json
}

// NewStateStore returns a StateStore backed by the XDG data directory.
// Path: $XDG_DATA_HOME/dwt/session.json or ~/.local/share/dwt/session.json
func NewStateStore() (StateStore, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, "session.json")}, nil
}

// dataDir returns the dwt-specific XDG data directory.
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "dwt"), nil
}

// Load reads and unmarshals the state file. A missing or unreadable record
// is treated as Idle so a fresh install or a corrupted file never blocks
// the user from starting a session.
func (d *diskStore) Load() (*State, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Idle(), nil
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt record: fall back to Idle rather than crash.
		fmt.Fprintf(os.Stderr, "warning: unreadable session state at %s, starting fresh\n", d.path)
		return Idle(), nil
	}
	if s.Status != StatusRunning && s.Status != StatusPaused {
		return Idle(), nil
	}
	if s.Status == StatusRunning && s.StartedAt == nil {
		return Idle(), nil
	}
	return &s, nil
}

// Save marshals s to JSON and writes it atomically via a temp file + os.Rename.
func (d *diskStore) Save(s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "session-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

// Delete removes the state file, resetting the machine to Idle.
func (d *diskStore) Delete() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// Path returns the on-disk location of the state record.
func (d *diskStore) Path() string {
	return d.path
}
