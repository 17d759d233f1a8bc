package domain

import (
	"errors"
	"math"
	"sort"
	"time"
	"unicode/utf8"
)

var (
	ErrWarningNotFound = errors.New("warning not found")
	ErrInvalidDayShift = errors.New("invalid day shift")
)

// MaxDayShift bounds a single ChangeDate call.
const MaxDayShift = 3660

type Warning struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Tracker is the in-memory session of one user: the habit list as seen on
// ViewDate, the full history and any persistence warnings not yet dismissed.
// It is not safe for concurrent use.
type Tracker struct {
	UserID       string
	Habits       []Habit
	History      History
	ViewDate     time.Time
	Achievements string
	Warnings     []Warning
}

// NewTracker builds a session from a loaded snapshot. A nil snapshot, or one
// without a stored habit list, yields the default habits.
func NewTracker(userID string, snap *Snapshot, now time.Time) *Tracker {
	t := &Tracker{
		UserID:   userID,
		ViewDate: StartOfDay(now),
	}

	if snap != nil {
		t.Habits = sanitizeHabits(snap.Habits)
		t.History = snap.History.Clone().Sanitize()
	}
	if snap == nil || snap.Habits == nil {
		t.Habits = DefaultHabits()
	}
	if t.History == nil {
		t.History = History{}
	}

	t.loadView()
	return t
}

func (t *Tracker) ViewKey() string {
	return DateKey(t.ViewDate)
}

// ViewLabel is the viewed day formatted with DateLabelLayout.
func (t *Tracker) ViewLabel() string {
	return t.ViewDate.Format(DateLabelLayout)
}

func (t *Tracker) IsViewingToday(now time.Time) bool {
	return t.ViewKey() == DateKey(now.In(t.ViewDate.Location()))
}

func (t *Tracker) find(id int) (int, error) {
	for i := range t.Habits {
		if t.Habits[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrHabitNotFound
}

// ToggleHabit flips the completion of a habit on the viewed day and rewrites
// that day's completion map from the whole list. It returns the touched key.
func (t *Tracker) ToggleHabit(id int) (string, error) {
	i, err := t.find(id)
	if err != nil {
		return "", err
	}
	t.Habits[i].Completed = !t.Habits[i].Completed

	key := t.ViewKey()
	entry := t.History.Entry(key)
	entry.Habits = make(map[int]bool, len(t.Habits))
	for _, h := range t.Habits {
		entry.Habits[h.ID] = h.Completed
	}
	return key, nil
}

func (t *Tracker) UpdateDetails(id int, details string) (string, error) {
	i, err := t.find(id)
	if err != nil {
		return "", err
	}
	if err := t.Habits[i].SetDetails(details); err != nil {
		return "", err
	}

	key := t.ViewKey()
	t.History.Entry(key).HabitDetails[id] = details
	return key, nil
}

func (t *Tracker) UpdateHabit(id int, patch HabitPatch) (*Habit, error) {
	i, err := t.find(id)
	if err != nil {
		return nil, err
	}
	if err := t.Habits[i].Apply(patch); err != nil {
		return nil, err
	}
	h := t.Habits[i]
	return &h, nil
}

func (t *Tracker) AddHabit() (*Habit, error) {
	h, err := NewHabit(NextHabitID(t.Habits))
	if err != nil {
		return nil, err
	}
	t.Habits = append(t.Habits, *h)
	return h, nil
}

// DeleteHabit removes the definition only; history keeps the stale id.
func (t *Tracker) DeleteHabit(id int) error {
	i, err := t.find(id)
	if err != nil {
		return err
	}
	t.Habits = append(t.Habits[:i], t.Habits[i+1:]...)
	return nil
}

func (t *Tracker) SaveAchievements(text string) (string, error) {
	if utf8.RuneCountInString(text) > MaxAchievesLen {
		return "", ErrAchievementsLong
	}
	t.Achievements = text

	key := t.ViewKey()
	t.History.Entry(key).Achievements = text
	return key, nil
}

// ChangeDate moves the view by days and loads that day's state.
func (t *Tracker) ChangeDate(days int) error {
	if days > MaxDayShift || days < -MaxDayShift {
		return ErrInvalidDayShift
	}
	t.ViewDate = StartOfDay(t.ViewDate.AddDate(0, 0, days))
	t.loadView()
	return nil
}

// loadView shows every stored entry of the viewed day, including keys written
// with zero padding. Flags are OR-ed; the canonical key wins for text.
func (t *Tracker) loadView() {
	key := t.ViewKey()
	entries := t.History.EntriesByDay(t.ViewDate.Location())[key]
	if canonical := t.History[key]; canonical != nil {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i] == canonical && entries[j] != canonical
		})
	}

	for i := range t.Habits {
		t.Habits[i].Completed = false
		t.Habits[i].Details = ""
	}
	t.Achievements = ""

	for _, entry := range entries {
		for i := range t.Habits {
			id := t.Habits[i].ID
			if entry.Habits[id] {
				t.Habits[i].Completed = true
			}
			if t.Habits[i].Details == "" {
				t.Habits[i].Details = entry.HabitDetails[id]
			}
		}
		if t.Achievements == "" {
			t.Achievements = entry.Achievements
		}
	}
}

// Completion is the rounded percentage of habits completed on the viewed day.
func (t *Tracker) Completion() int {
	if len(t.Habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range t.Habits {
		if h.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(t.Habits)) * 100))
}

// Streaks uses the Completed flags as live state only while today is the
// viewed day; otherwise they describe another day and the stored history
// alone decides.
func (t *Tracker) Streaks(now time.Time) Streaks {
	now = now.In(t.ViewDate.Location())
	if t.IsViewingToday(now) {
		return ComputeStreaks(t.Habits, t.History, now)
	}
	return ComputeStoredStreaks(t.Habits, t.History, now)
}

func (t *Tracker) AddWarning(msg string, at time.Time) {
	t.Warnings = append(t.Warnings, Warning{Message: msg, At: at})
}

func (t *Tracker) DismissWarning(index int) error {
	if index < 0 || index >= len(t.Warnings) {
		return ErrWarningNotFound
	}
	t.Warnings = append(t.Warnings[:index], t.Warnings[index+1:]...)
	return nil
}

func (t *Tracker) ClearWarnings() {
	t.Warnings = nil
}

// HabitsCopy returns the definitions to persist.
func (t *Tracker) HabitsCopy() []Habit {
	out := make([]Habit, len(t.Habits))
	copy(out, t.Habits)
	return out
}

// EntryCopy returns a detached copy of the entry stored under key.
func (t *Tracker) EntryCopy(key string) *HistoryEntry {
	return t.History[key].Clone()
}
