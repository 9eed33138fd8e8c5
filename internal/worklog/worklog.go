// Package worklog is the append-only record of ended deep-work sessions.
// The timer appends one entry per ended session; the aggregator and the
// calendar read the whole log.
package worklog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day key used throughout the log.
const DateLayout = "2006-01-02"

// Entry is a single ended session: the local calendar day it belongs to and
// how long it ran.
type Entry struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"` // local calendar day, DateLayout
	DurationSeconds int       `json:"duration_seconds"`
	Completed       bool      `json:"completed"` // reached the target vs. ended early
	StartedAt       time.Time `json:"started_at,omitzero"`
	EndedAt         time.Time `json:"ended_at,omitzero"`
}

// NewEntry builds the log record for a session ending now after
// elapsedSeconds of focus. StartedAt is the effective focus span, excluding
// paused stretches.
func NewEntry(now time.Time, elapsedSeconds int, completed bool) Entry {
	return Entry{
		ID:              uuid.New().String(),
		Date:            now.Format(DateLayout),
		DurationSeconds: elapsedSeconds,
		Completed:       completed,
		StartedAt:       now.Add(-time.Duration(elapsedSeconds) * time.Second),
		EndedAt:         now,
	}
}

// Store persists work log entries.
type Store interface {
	Append(e Entry) error
	LoadAll() ([]Entry, error) // missing or corrupt log yields an empty slice
	Path() string
}

// diskStore keeps the log as a JSON array in a single file.
type diskStore struct {
	path string
}

// NewStore returns a Store backed by the given file path. The file is
// created on first append.
func NewStore(path string) Store {
	return &diskStore{path: path}
}

// LoadAll reads every entry in the log. A missing file is an empty log; an
// unreadable one is reported once and treated as empty rather than blocking
// aggregation.
func (d *diskStore) LoadAll() ([]Entry, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read work log: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: unreadable work log at %s, treating as empty\n", d.path)
		return []Entry{}, nil
	}
	return entries, nil
}

// Append adds one entry and rewrites the log atomically, so a crash mid-write
// never leaves a half-written array readable.
func (d *diskStore) Append(e Entry) error {
	entries, err := d.LoadAll()
	if err != nil {
		return err
	}
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist work log: %w", err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to persist work log: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "worklog-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist work log: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist work log: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist work log: %w", err)
	}
	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist work log: %w", err)
	}
	return nil
}

// Path returns the on-disk location of the log.
func (d *diskStore) Path() string {
	return d.path
}
