// Package stats derives daily totals, streaks and weekly progress from the
// work log. Everything here is a pure function of the log, the daily goal
// and a reference day, so the same inputs always produce the same summary.
package stats

import (
	"sort"
	"time"

	"github.com/deepwork-cli/dwt/internal/worklog"
)

// Summary is the aggregate view of the work log. Derived on every
// invocation, never persisted.
type Summary struct {
	DailyTotals        map[string]int // day key (worklog.DateLayout) -> seconds logged
	Streak             int            // consecutive met days ending today or yesterday
	LongestStreak      int
	WeekSeconds        int // last 7 calendar days inclusive of today
	Avg30Seconds       int // mean seconds/day over the trailing 30 days
	ActiveDaysThisYear int
}

// DayKey formats t as the canonical daily-total key.
func DayKey(t time.Time) string {
	return t.Format(worklog.DateLayout)
}

// Summarize aggregates entries against a daily goal, with today as the
// reference day. goalMinutes <= 0 means vacation mode: no day is "met" and
// streaks stay at zero.
func Summarize(entries []worklog.Entry, goalMinutes int, today time.Time) Summary {
	s := Summary{DailyTotals: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.DurationSeconds <= 0 {
			continue
		}
		s.DailyTotals[e.Date] += e.DurationSeconds
	}

	s.Streak = currentStreak(s.DailyTotals, goalMinutes, today)
	s.LongestStreak = longestStreak(s.DailyTotals, goalMinutes)

	for i := 0; i < 7; i++ {
		s.WeekSeconds += s.DailyTotals[DayKey(today.AddDate(0, 0, -i))]
	}

	var last30 int
	for i := 0; i < 30; i++ {
		last30 += s.DailyTotals[DayKey(today.AddDate(0, 0, -i))]
	}
	s.Avg30Seconds = last30 / 30

	year := today.Year()
	for key, secs := range s.DailyTotals {
		if secs <= 0 {
			continue
		}
		if day, err := time.ParseInLocation(worklog.DateLayout, key, time.Local); err == nil && day.Year() == year {
			s.ActiveDaysThisYear++
		}
	}
	return s
}

// Met reports whether the given day's total reaches the goal.
func Met(totals map[string]int, goalMinutes int, day time.Time) bool {
	if goalMinutes <= 0 {
		return false
	}
	return totals[DayKey(day)] >= goalMinutes*60
}

// currentStreak walks back from today while consecutive days meet the goal.
// An unmet today does not break a streak that ended yesterday; it just
// starts the walk one day earlier.
func currentStreak(totals map[string]int, goalMinutes int, today time.Time) int {
	if goalMinutes <= 0 {
		return 0
	}
	day := today
	if !Met(totals, goalMinutes, day) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for Met(totals, goalMinutes, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans all logged days for the longest run of consecutive
// met days.
func longestStreak(totals map[string]int, goalMinutes int) int {
	if goalMinutes <= 0 {
		return 0
	}
	threshold := goalMinutes * 60
	var days []time.Time
	for key, secs := range totals {
		if secs < threshold {
			continue
		}
		day, err := time.ParseInLocation(worklog.DateLayout, key, time.Local)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && DayKey(days[i-1].AddDate(0, 0, 1)) == DayKey(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
