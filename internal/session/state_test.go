package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/deepwork-cli/dwt/internal/session"
)

func TestStartFromIdle(t *testing.T) {
	st := session.Idle()
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)

	require.NoError(t, st.Start(now))
	assert.Equal(t, session.StatusRunning, st.Status)
	require.NotNil(t, st.StartedAt)
	assert.True(t, st.StartedAt.Equal(now))
	assert.Equal(t, 0, st.AccumulatedSeconds)
	assert.Equal(t, session.DefaultTargetSeconds, st.TargetSeconds)
}

func TestStartWhileActiveFailsAndLeavesStateUnchanged(t *testing.T) {
	st := session.Idle()
	t0 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	require.NoError(t, st.Start(t0))

	err := st.Start(t0.Add(time.Minute))
	assert.ErrorIs(t, err, session.ErrSessionActive)
	assert.Equal(t, session.StatusRunning, st.Status)
	assert.True(t, st.StartedAt.Equal(t0))

	st.Pause(t0.Add(2 * time.Minute))
	err = st.Start(t0.Add(3 * time.Minute))
	assert.ErrorIs(t, err, session.ErrSessionActive)
	assert.Equal(t, session.StatusPaused, st.Status)
}

func TestResumeOnlyFromPaused(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)

	st := session.Idle()
	assert.ErrorIs(t, st.Resume(now), session.ErrNoPausedSession)

	require.NoError(t, st.Start(now))
	assert.ErrorIs(t, st.Resume(now.Add(time.Minute)), session.ErrNoPausedSession)

	st.Pause(now.Add(2 * time.Minute))
	require.NoError(t, st.Resume(now.Add(3*time.Minute)))
	assert.Equal(t, session.StatusRunning, st.Status)
	assert.Equal(t, 120, st.AccumulatedSeconds)
}

func TestPauseFoldsElapsedIntoAccumulated(t *testing.T) {
	st := session.Idle()
	t0 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	require.NoError(t, st.Start(t0))

	st.Pause(t0.Add(300 * time.Second))
	assert.Equal(t, session.StatusPaused, st.Status)
	assert.Equal(t, 300, st.AccumulatedSeconds)
	assert.Nil(t, st.StartedAt)

	// Pausing again is a no-op.
	st.Pause(t0.Add(400 * time.Second))
	assert.Equal(t, 300, st.AccumulatedSeconds)
}

// Start at T0, pause at T0+300, continue at T0+600, end at T0+900: paused
// time does not count, so 600 seconds of focus, short of the target.
func TestPauseResumeExcludesPausedTime(t *testing.T) {
	st := session.Idle()
	t0 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)

	require.NoError(t, st.Start(t0))
	st.Pause(t0.Add(300 * time.Second))
	assert.Equal(t, 300, st.AccumulatedSeconds)

	require.NoError(t, st.Resume(t0.Add(600*time.Second)))
	end := t0.Add(900 * time.Second)
	assert.Equal(t, 600, st.Elapsed(end))
	assert.False(t, st.Done(end))
}

// Property: elapsed time equals the sum of run-segment durations no matter
// how many pause/resume cycles happen or how long the pauses last.
func TestAccumulationAcrossPauseResumeCycles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := session.Idle()
		now := time.Unix(1_700_000_000, 0)
		if err := st.Start(now); err != nil {
			rt.Fatalf("Start: %v", err)
		}

		total := 0
		cycles := rapid.IntRange(1, 10).Draw(rt, "cycles")
		for i := 0; i < cycles; i++ {
			run := rapid.IntRange(0, 5000).Draw(rt, "run_secs")
			now = now.Add(time.Duration(run) * time.Second)
			total += run

			st.Pause(now)
			if st.AccumulatedSeconds != total {
				rt.Fatalf("after pause %d: accumulated = %d, want %d", i, st.AccumulatedSeconds, total)
			}

			gap := rapid.IntRange(0, 100_000).Draw(rt, "pause_secs")
			now = now.Add(time.Duration(gap) * time.Second)
			if err := st.Resume(now); err != nil {
				rt.Fatalf("Resume: %v", err)
			}
		}

		tail := rapid.IntRange(0, 5000).Draw(rt, "tail_secs")
		now = now.Add(time.Duration(tail) * time.Second)
		total += tail

		if got := st.Elapsed(now); got != total {
			rt.Fatalf("Elapsed = %d, want %d", got, total)
		}
	})
}

func TestRemainingFloorsAtZero(t *testing.T) {
	st := session.Idle()
	t0 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	require.NoError(t, st.Start(t0))

	over := t0.Add(2 * time.Hour)
	assert.Equal(t, 0, st.Remaining(over))
	assert.True(t, st.Done(over))
	assert.False(t, st.Done(t0.Add(time.Minute)))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", session.FormatClock(0))
	assert.Equal(t, "01:05", session.FormatClock(65))
	assert.Equal(t, "60:00", session.FormatClock(3600))
	assert.Equal(t, "00:00", session.FormatClock(-30))
}
