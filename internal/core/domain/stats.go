package domain

import (
	"errors"
	"time"
)

// MaxStatsRangeDays bounds a single statistics request.
const MaxStatsRangeDays = 366

var (
	ErrInvalidStatsRange = errors.New("start_date cannot be after end_date")
	ErrStatsRangeTooLong = errors.New("date range too large, max 1 year allowed")
)

type WeeklyStats struct {
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	TotalHabits int            `json:"total_habits"`
	OverallRate float64        `json:"overall_completion_rate"`
	HabitStats  []HabitStat    `json:"habits"`
	Categories  []CategoryStat `json:"categories"`
	Streaks     Streaks        `json:"streaks"`
}

type HabitStat struct {
	HabitID        int      `json:"habit_id"`
	HabitName      string   `json:"habit_name"`
	Category       Category `json:"category"`
	Icon           string   `json:"icon"`
	CompletionRate float64  `json:"completion_rate"`
	DaysCompleted  int      `json:"days_completed"`
	NotesWritten   int      `json:"notes_written"`
	DailyProgress  []int    `json:"daily_progress"`
}

type CategoryStat struct {
	Category     Category `json:"category"`
	Habits       int      `json:"habits"`
	ActiveDays   int      `json:"active_days"`
	DaysInPeriod int      `json:"days_in_period"`
	ActivityRate float64  `json:"activity_rate"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}
