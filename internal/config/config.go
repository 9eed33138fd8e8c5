// Package config loads dwt settings: the daily goal, the heatmap window and
// the work log location. A global file under ~/.config is merged with an
// optional project-relative .dwtconfig, project values taking precedence.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds the merged, effective dwt settings.
type Config struct {
	DailyGoalMinutes int    `json:"daily_goal_minutes"` // 0 = vacation mode
	HeatmapWeeks     int    `json:"heatmap_weeks"`      // trailing window of the calendar
	WorkLogPath      string `json:"work_log_path"`      // override the project-relative default
}

// Overlay is a partially-specified config as read from a file. The goal is a
// pointer because zero is meaningful there (vacation mode) and must be
// distinguishable from "not set".
type Overlay struct {
	DailyGoalMinutes *int   `json:"daily_goal_minutes,omitempty"`
	HeatmapWeeks     int    `json:"heatmap_weeks,omitempty"`
	WorkLogPath      string `json:"work_log_path,omitempty"`
}

// DefaultWorkLogFile is the project-relative work log location.
const DefaultWorkLogFile = "deep-work.json"

// Defaults returns sensible default configuration values: a four-hour daily
// goal and a six-month calendar.
func Defaults() Config {
	return Config{
		DailyGoalMinutes: 240,
		HeatmapWeeks:     26,
		WorkLogPath:      DefaultWorkLogFile,
	}
}

// GlobalPath returns the location of the global config file.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dwt", "config.json"), nil
}

// LoadGlobal reads the global config file. Returns nil (no error) if absent.
func LoadGlobal() (*Overlay, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

// LoadProject reads .dwtconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Overlay, error) {
	return loadFile(".dwtconfig")
}

// loadFile reads and parses a JSON overlay file at path, nil when absent.
func loadFile(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var o Overlay
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &o, nil
}

// Merge combines global and project overlays over the defaults, with project
// taking precedence.
func Merge(global, project *Overlay) Config {
	result := Defaults()

	apply := func(o *Overlay) {
		if o == nil {
			return
		}
		if o.DailyGoalMinutes != nil && *o.DailyGoalMinutes >= 0 {
			result.DailyGoalMinutes = *o.DailyGoalMinutes
		}
		if o.HeatmapWeeks > 0 {
			result.HeatmapWeeks = o.HeatmapWeeks
		}
		if o.WorkLogPath != "" {
			result.WorkLogPath = o.WorkLogPath
		}
	}
	apply(global)
	apply(project)

	return result
}

// SaveGlobalGoal persists a new daily goal to the global config file,
// preserving any other values already set there.
func SaveGlobalGoal(goalMinutes int) error {
	path, err := GlobalPath()
	if err != nil {
		return err
	}
	existing, err := loadFile(path)
	if err != nil {
		// A malformed file is replaced rather than blocking the settings
		// change; the warning is the parse error itself.
		existing = nil
	}
	if existing == nil {
		existing = &Overlay{}
	}
	existing.DailyGoalMinutes = &goalMinutes

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
