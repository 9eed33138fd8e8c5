// Package session holds the deep-work timer state machine and its on-disk
// store. Each CLI invocation is a fresh process, so the stored record is the
// sole source of truth for whether a session is running or paused and how
// much time has elapsed.
package session

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTargetSeconds is the fixed session length: one hour.
const DefaultTargetSeconds = 3600

// SchemaVersion marks the on-disk state format.
const SchemaVersion = 1

// Status is the timer lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// ErrSessionActive is returned by Start when a session is already running
// or paused.
var ErrSessionActive = errors.New("session already in progress")

// ErrNoPausedSession is returned by Resume when there is nothing to resume.
var ErrNoPausedSession = errors.New("no paused session")

// ErrNoSession is returned by commands that need a stored session when the
// state is Idle.
var ErrNoSession = errors.New("no running session")

// State is the single timer record, overwritten in place on every
// transition that persists.
type State struct {
	Version            int        `json:"version"`
	Status             Status     `json:"status"`
	StartedAt          *time.Time `json:"started_at,omitempty"` // most recent resume point
	AccumulatedSeconds int        `json:"accumulated_seconds"`  // banked before the current run segment
	TargetSeconds      int        `json:"target_seconds"`
}

// Idle returns the default state: no session, nothing accumulated.
func Idle() *State {
	return &State{Version: SchemaVersion, Status: StatusIdle, TargetSeconds: DefaultTargetSeconds}
}

// Start begins a new session. Allowed only from Idle.
func (s *State) Start(now time.Time) error {
	if s.Status != StatusIdle {
		return fmt.Errorf("%w (use 'continue' or 'stop')", ErrSessionActive)
	}
	s.Version = SchemaVersion
	s.Status = StatusRunning
	s.StartedAt = &now
	s.AccumulatedSeconds = 0
	if s.TargetSeconds <= 0 {
		s.TargetSeconds = DefaultTargetSeconds
	}
	return nil
}

// Resume continues a paused session with a fresh run segment.
// Allowed only from Paused.
func (s *State) Resume(now time.Time) error {
	if s.Status != StatusPaused {
		return fmt.Errorf("%w (use 'start' to begin one)", ErrNoPausedSession)
	}
	s.Status = StatusRunning
	s.StartedAt = &now
	return nil
}

// Pause folds the current run segment into AccumulatedSeconds and stops the
// clock. Pausing a session that is not running is a no-op.
func (s *State) Pause(now time.Time) {
	if s.Status != StatusRunning {
		return
	}
	s.AccumulatedSeconds = s.Elapsed(now)
	s.Status = StatusPaused
	s.StartedAt = nil
}

// Elapsed reports whole seconds of focus so far: banked time plus the
// current run segment when the clock is running.
func (s *State) Elapsed(now time.Time) int {
	total := s.AccumulatedSeconds
	if s.Status == StatusRunning && s.StartedAt != nil {
		total += int(now.Sub(*s.StartedAt) / time.Second)
	}
	return total
}

// Remaining reports seconds left until the target, floored at zero.
func (s *State) Remaining(now time.Time) int {
	r := s.TargetSeconds - s.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// Done reports whether the session has reached its target length. An ended
// session is logged as completed exactly when this is true.
func (s *State) Done(now time.Time) bool {
	return s.Elapsed(now) >= s.TargetSeconds
}

// FormatClock renders a second count as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
