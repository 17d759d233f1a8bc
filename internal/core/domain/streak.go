package domain

import "time"

// Streaks are derived from the history and the current habit list; they are
// never stored.
type Streaks struct {
	Exercise int `json:"exercise"`
	Learning int `json:"learning"`
}

// ComputeStreaks returns the number of consecutive days, ending today, on which
// at least one Physical (exercise) or Learning habit was completed.
//
// Category membership comes from habits, never from the stored days. The
// Completed flags of habits are the live state of today: for the most recent
// stored day they replace the stored flags when that day is today, and are
// OR-ed in otherwise. Callers viewing a day other than today must pass habits
// with Completed cleared, or use ComputeStoredStreaks.
func ComputeStreaks(habits []Habit, history History, now time.Time) Streaks {
	return computeStreaks(habits, history, now, true)
}

// ComputeStoredStreaks is ComputeStreaks without live state: every day,
// today included, is judged by its stored flags only. Completed flags of
// habits are ignored.
func ComputeStoredStreaks(habits []Habit, history History, now time.Time) Streaks {
	return computeStreaks(habits, history, now, false)
}

func computeStreaks(habits []Habit, history History, now time.Time, live bool) Streaks {
	if len(history) == 0 {
		return Streaks{}
	}

	days := history.days(now.Location())
	if len(days) == 0 {
		return Streaks{}
	}

	categories := make(map[int]Category, len(habits))
	for _, h := range habits {
		categories[h.ID] = h.Category
	}

	today := StartOfDay(now)

	return Streaks{
		Exercise: categoryStreak(CategoryPhysical, habits, categories, history, days, today, live),
		Learning: categoryStreak(CategoryLearning, habits, categories, history, days, today, live),
	}
}

func categoryStreak(cat Category, habits []Habit, categories map[int]Category, history History, days []historyDay, today time.Time, live bool) int {
	liveCompleted := false
	for _, h := range habits {
		if live && h.Category == cat && h.Completed {
			liveCompleted = true
			break
		}
	}

	streak := 0
	cursor := today

	for i := len(days) - 1; i >= 0; i-- {
		day := days[i]

		diff := CalendarDaysBetween(day.date, cursor)
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			break
		}

		cursor = cursor.AddDate(0, 0, -1)

		var completed bool
		switch {
		case live && i == len(days)-1 && CalendarDaysBetween(day.date, today) == 0:
			completed = liveCompleted
		case i == len(days)-1:
			completed = liveCompleted || storedCompletion(cat, categories, history, day.keys)
		default:
			completed = storedCompletion(cat, categories, history, day.keys)
		}

		if !completed {
			break
		}
		streak++
	}

	return streak
}

// storedCompletion reports whether any stored habit id that still resolves to
// a current habit of cat was completed on the day. Stale ids are ignored.
func storedCompletion(cat Category, categories map[int]Category, history History, keys []string) bool {
	for _, k := range keys {
		entry := history[k]
		if entry == nil {
			continue
		}
		for id, done := range entry.Habits {
			if !done {
				continue
			}
			if c, ok := categories[id]; ok && c == cat {
				return true
			}
		}
	}
	return false
}
