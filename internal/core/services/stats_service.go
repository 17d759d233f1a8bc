package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// SnapshotReader exposes a user's habits and history. *TrackerService
// implements it, so statistics include writes still in flight.
type SnapshotReader interface {
	Snapshot(ctx context.Context, userID string) (*domain.Snapshot, domain.Streaks)
}

type StatsService struct {
	reader SnapshotReader
}

func NewStatsService(reader SnapshotReader) *StatsService {
	return &StatsService{
		reader: reader,
	}
}

var statsCategories = []domain.Category{
	domain.CategoryPhysical,
	domain.CategoryLearning,
	domain.CategoryOther,
}

func (s *StatsService) GetWeeklyStats(ctx context.Context, input domain.StatsInput) (*domain.WeeklyStats, error) {
	startDate := domain.StartOfDay(input.StartDate)
	endDate := domain.StartOfDay(input.EndDate.In(startDate.Location()))

	if startDate.After(endDate) {
		return nil, domain.ErrInvalidStatsRange
	}
	if domain.CalendarDaysBetween(startDate, endDate) > domain.MaxStatsRangeDays {
		return nil, domain.ErrStatsRangeTooLong
	}

	snap, streaks := s.reader.Snapshot(ctx, input.UserID)
	byDay := snap.History.EntriesByDay(startDate.Location())

	stats := &domain.WeeklyStats{
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		TotalHabits: len(snap.Habits),
		HabitStats:  make([]domain.HabitStat, 0, len(snap.Habits)),
		Categories:  make([]domain.CategoryStat, 0, len(statsCategories)),
		Streaks:     streaks,
	}

	var dayKeys []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dayKeys = append(dayKeys, domain.DateKey(d))
	}

	totalDaysPossible := 0
	totalDaysCompleted := 0
	activeByCategory := make(map[domain.Category]map[string]bool)

	for _, h := range snap.Habits {
		hStat := domain.HabitStat{
			HabitID:       h.ID,
			HabitName:     h.Name,
			Category:      h.Category,
			Icon:          h.Icon,
			DailyProgress: make([]int, 0, len(dayKeys)),
		}

		for _, key := range dayKeys {
			done, noted := dayState(byDay[key], h.ID)

			progress := 0
			if done {
				progress = 1
				hStat.DaysCompleted++
				totalDaysCompleted++

				if activeByCategory[h.Category] == nil {
					activeByCategory[h.Category] = make(map[string]bool)
				}
				activeByCategory[h.Category][key] = true
			}
			if noted {
				hStat.NotesWritten++
			}
			hStat.DailyProgress = append(hStat.DailyProgress, progress)
			totalDaysPossible++
		}

		if len(dayKeys) > 0 {
			hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(len(dayKeys)) * 100
		}
		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	for _, cat := range statsCategories {
		count := 0
		for _, h := range snap.Habits {
			if h.Category == cat {
				count++
			}
		}
		if count == 0 {
			continue
		}

		cs := domain.CategoryStat{
			Category:     cat,
			Habits:       count,
			ActiveDays:   len(activeByCategory[cat]),
			DaysInPeriod: len(dayKeys),
		}
		if cs.DaysInPeriod > 0 {
			cs.ActivityRate = float64(cs.ActiveDays) / float64(cs.DaysInPeriod) * 100
		}
		stats.Categories = append(stats.Categories, cs)
	}

	if totalDaysPossible > 0 {
		stats.OverallRate = float64(totalDaysCompleted) / float64(totalDaysPossible) * 100
	}

	return stats, nil
}

// dayState merges every entry stored for one day.
func dayState(entries []*domain.HistoryEntry, id int) (done, noted bool) {
	for _, e := range entries {
		if e.Habits[id] {
			done = true
		}
		if e.HabitDetails[id] != "" {
			noted = true
		}
	}
	return done, noted
}

// DefaultStatsRange is the last seven days ending on now.
func DefaultStatsRange(now time.Time) (time.Time, time.Time) {
	end := domain.StartOfDay(now)
	return end.AddDate(0, 0, -6), end
}
