package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/deepwork-cli/dwt/internal/session"
	"github.com/deepwork-cli/dwt/internal/worklog"
)

func TestStopWithoutSessionFails(t *testing.T) {
	setupEnv(t)

	_, err := executeCommand(rootCmd, "stop")
	if err == nil {
		t.Fatal("expected an error when no session exists")
	}
	if !strings.Contains(err.Error(), "no running session") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStopWhilePausedFails(t *testing.T) {
	setupEnv(t)
	store := saveRunningState(t, time.Minute)
	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	st.Pause(time.Now())
	if err := store.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = executeCommand(rootCmd, "stop")
	if err == nil {
		t.Fatal("expected an error when the session is paused")
	}
	if !strings.Contains(err.Error(), "already paused") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStopPauseKeepsState(t *testing.T) {
	setupEnv(t)
	store := saveRunningState(t, 10*time.Minute)

	out, err := executeCommand(rootCmd, "stop", "--pause")
	if err != nil {
		t.Fatalf("stop --pause: %v", err)
	}
	if !strings.Contains(out, "paused") {
		t.Errorf("unexpected output: %q", out)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Status != session.StatusPaused {
		t.Fatalf("expected Paused on disk, got %q", st.Status)
	}
	if got := st.AccumulatedSeconds; got < 598 || got > 602 {
		t.Errorf("accumulated %ds, want ~600s", got)
	}

	entries, err := worklog.NewStore(cfg.WorkLogPath).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("pause must not write to the work log, got %d entries", len(entries))
	}
}

func TestStopEndLogsEntryAndClearsState(t *testing.T) {
	setupEnv(t)
	store := saveRunningState(t, 20*time.Minute)

	out, err := executeCommand(rootCmd, "stop", "--end")
	if err != nil {
		t.Fatalf("stop --end: %v", err)
	}
	if !strings.Contains(out, "ended early") {
		t.Errorf("a 20-minute session ends short of the target: %q", out)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Status != session.StatusIdle {
		t.Errorf("expected Idle after end, got %q", st.Status)
	}

	entries, err := worklog.NewStore(cfg.WorkLogPath).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Completed {
		t.Error("entry should not be marked completed")
	}
	if e.DurationSeconds < 1198 || e.DurationSeconds > 1202 {
		t.Errorf("duration %ds, want ~1200s", e.DurationSeconds)
	}
	if e.Date != time.Now().Format("2006-01-02") {
		t.Errorf("entry dated %q", e.Date)
	}
}

func TestStopEndAfterTargetMarksCompleted(t *testing.T) {
	setupEnv(t)
	saveRunningState(t, time.Duration(session.DefaultTargetSeconds+30)*time.Second)

	out, err := executeCommand(rootCmd, "stop", "--end")
	if err != nil {
		t.Fatalf("stop --end: %v", err)
	}
	if !strings.Contains(out, "target reached") {
		t.Errorf("unexpected output: %q", out)
	}

	entries, err := worklog.NewStore(cfg.WorkLogPath).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 1 || !entries[0].Completed {
		t.Fatalf("expected one completed entry, got %+v", entries)
	}
}
