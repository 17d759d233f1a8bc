package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDateKey = errors.New("invalid date key (expected YYYY-M-D)")
)

// DateLabelLayout renders a viewed day for people, e.g. "Wednesday, January 3, 2024".
const DateLabelLayout = "Monday, January 2, 2006"

// HistoryEntry is the archived state of a single calendar day.
type HistoryEntry struct {
	Habits       map[int]bool   `json:"habits"`
	HabitDetails map[int]string `json:"habitDetails"`
	Achievements string         `json:"achievements"`
}

// History is keyed by DateKey strings.
type History map[string]*HistoryEntry

func NewHistoryEntry() *HistoryEntry {
	return &HistoryEntry{
		Habits:       make(map[int]bool),
		HabitDetails: make(map[int]string),
	}
}

// DateKey formats t as YYYY-M-D without zero padding, in t's own location.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey returns midnight of the key's day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day {
		// 2024-2-31 and friends would silently roll over.
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarDaysBetween counts whole calendar days from a to b using their date
// components only, so DST shifts never produce fractional days.
func CalendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

type historyDay struct {
	date time.Time
	keys []string
}

// days groups the parseable keys of h by calendar day in chronological order.
// Keys that do not parse are skipped; "2024-01-02" and "2024-1-2" share a day.
func (h History) days(loc *time.Location) []historyDay {
	byDate := make(map[string]*historyDay, len(h))
	for k := range h {
		d, err := ParseDateKey(k, loc)
		if err != nil {
			continue
		}
		canonical := DateKey(d)
		day, ok := byDate[canonical]
		if !ok {
			day = &historyDay{date: d}
			byDate[canonical] = day
		}
		day.keys = append(day.keys, k)
	}

	days := make([]historyDay, 0, len(byDate))
	for _, day := range byDate {
		sort.Strings(day.keys)
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].date.Before(days[j].date)
	})
	return days
}

// EntriesByDay indexes the non-nil entries of h by canonical DateKey.
func (h History) EntriesByDay(loc *time.Location) map[string][]*HistoryEntry {
	out := make(map[string][]*HistoryEntry, len(h))
	for _, day := range h.days(loc) {
		key := DateKey(day.date)
		for _, k := range day.keys {
			if e := h[k]; e != nil {
				out[key] = append(out[key], e)
			}
		}
	}
	return out
}

// Entry returns the entry stored for key, creating it on first use.
func (h History) Entry(key string) *HistoryEntry {
	e, ok := h[key]
	if !ok || e == nil {
		e = NewHistoryEntry()
		h[key] = e
		return e
	}
	e.ensureMaps()
	return e
}

func (e *HistoryEntry) ensureMaps() {
	if e.Habits == nil {
		e.Habits = make(map[int]bool)
	}
	if e.HabitDetails == nil {
		e.HabitDetails = make(map[int]string)
	}
}

func (e *HistoryEntry) Clone() *HistoryEntry {
	if e == nil {
		return NewHistoryEntry()
	}
	c := &HistoryEntry{
		Habits:       make(map[int]bool, len(e.Habits)),
		HabitDetails: make(map[int]string, len(e.HabitDetails)),
		Achievements: e.Achievements,
	}
	for k, v := range e.Habits {
		c.Habits[k] = v
	}
	for k, v := range e.HabitDetails {
		c.HabitDetails[k] = v
	}
	return c
}

func (h History) Clone() History {
	c := make(History, len(h))
	for k, e := range h {
		c[k] = e.Clone()
	}
	return c
}

// Sanitize treats missing maps and null entries as empty. It is applied to
// everything read back from storage.
func (h History) Sanitize() History {
	if h == nil {
		return History{}
	}
	for k, e := range h {
		if e == nil {
			h[k] = NewHistoryEntry()
			continue
		}
		e.ensureMaps()
	}
	return h
}
