// Package timer runs the interactive countdown for a running session. The
// loop re-renders once per second and never persists on a tick: state is
// written only on the explicit exits (pause, end, interrupt), so the discard
// path stays intentionally lossy.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepwork-cli/dwt/internal/focus"
	"github.com/deepwork-cli/dwt/internal/session"
	"github.com/deepwork-cli/dwt/internal/worklog"
)

// Outcome describes how the countdown loop exited.
type Outcome int

const (
	// OutcomePaused: the run segment was folded into the state and persisted.
	OutcomePaused Outcome = iota
	// OutcomeEnded: the session was ended early and logged.
	OutcomeEnded
	// OutcomeCompleted: the target was reached and the session was logged.
	OutcomeCompleted
	// OutcomeDiscarded: the session was quit without logging anything.
	OutcomeDiscarded
)

// Overridable in tests so exit paths don't shell out to the focus toggle.
var (
	focusEnd    = focus.End
	focusNotify = focus.Notify
)

var (
	clockStyle  = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type mode int

const (
	modeCounting mode = iota
	modeChoosing      // stop pressed: pause or end?
)

// Model is the Bubble Tea model for the countdown.
type Model struct {
	state    *session.State
	store    session.StateStore
	log      worklog.Store
	bar      progress.Model
	now      time.Time
	mode     mode
	outcome  Outcome
	finished bool
	err      error
}

// New builds a countdown model over a running session.
func New(st *session.State, store session.StateStore, log worklog.Store, now time.Time) Model {
	return Model{
		state: st,
		store: store,
		log:   log,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		now:   now,
	}
}

func (m Model) Init() tea.Cmd { return tickCmd() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		if m.state.Done(m.now) {
			return m.endSession(OutcomeCompleted)
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch m.mode {
		case modeCounting:
			switch msg.String() {
			case "s":
				m.mode = modeChoosing
				return m, nil
			case "q":
				// Explicit discard: nothing is logged and the stored state
				// is cleared.
				focusEnd()
				if err := m.store.Delete(); err != nil {
					m.err = err
				}
				m.outcome = OutcomeDiscarded
				m.finished = true
				return m, tea.Quit
			case "ctrl+c":
				return m.pauseSession()
			}
		case modeChoosing:
			switch msg.String() {
			case "p":
				return m.pauseSession()
			case "e":
				return m.endSession(OutcomeEnded)
			case "esc", "r":
				m.mode = modeCounting
				return m, nil
			case "ctrl+c":
				return m.pauseSession()
			}
		}
	}
	return m, nil
}

// pauseSession folds the run segment into the state and persists it. This is
// also the interrupt path, so Ctrl-C never silently loses progress.
func (m Model) pauseSession() (tea.Model, tea.Cmd) {
	m.state.Pause(time.Now())
	if err := m.store.Save(m.state); err != nil {
		m.err = err
	}
	focusEnd()
	m.outcome = OutcomePaused
	m.finished = true
	return m, tea.Quit
}

// endSession logs the session and resets the stored state to Idle. A session
// that reached its target is logged completed; an early end is not.
func (m Model) endSession(outcome Outcome) (tea.Model, tea.Cmd) {
	now := time.Now()
	elapsed := m.state.Elapsed(now)

	entry := worklog.NewEntry(now, elapsed, m.state.Done(now))
	if err := m.log.Append(entry); err != nil {
		m.err = err
	} else if err := m.store.Delete(); err != nil {
		m.err = err
	}

	focusEnd()
	if outcome == OutcomeCompleted {
		focusNotify()
	}
	m.outcome = outcome
	m.finished = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.finished {
		return ""
	}

	remaining := m.state.Remaining(m.now)
	ratio := float64(m.state.Elapsed(m.now)) / float64(m.state.TargetSeconds)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	line := fmt.Sprintf("  %s  %s", clockStyle.Render(session.FormatClock(remaining)), m.bar.ViewAs(ratio))
	switch m.mode {
	case modeChoosing:
		return line + "\n  " + promptStyle.Render("stop: [p]ause  [e]nd  [esc] resume") + "\n"
	default:
		return line + "\n  " + hintStyle.Render("[s]top  [q]uit  ctrl+c pauses") + "\n"
	}
}

// Outcome returns how the loop exited; valid once Run has returned.
func (m Model) Outcome() Outcome { return m.outcome }

// Err returns any persistence error hit on an exit path.
func (m Model) Err() error { return m.err }

// Run starts the countdown and blocks until the session is paused, ended,
// completed or discarded.
func Run(st *session.State, store session.StateStore, log worklog.Store) (Outcome, error) {
	p := tea.NewProgram(New(st, store, log, time.Now()))
	final, err := p.Run()
	return resolve(final, err, st, store)
}

// resolve maps the program result to an outcome. A real SIGINT surfaces as
// tea.ErrInterrupted without ever reaching Update, so the pause-and-persist
// for that path lives here.
func resolve(final tea.Model, err error, st *session.State, store session.StateStore) (Outcome, error) {
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			st.Pause(time.Now())
			if saveErr := store.Save(st); saveErr != nil {
				return OutcomePaused, saveErr
			}
			focusEnd()
			return OutcomePaused, nil
		}
		return OutcomePaused, err
	}
	m := final.(Model)
	return m.Outcome(), m.Err()
}
