package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDetailsLong = errors.New("habit details are too long (max 2000 chars)")
	ErrInvalidCategory  = errors.New("invalid habit category (must be Physical, Learning or Other)")
	ErrInvalidHabitID   = errors.New("invalid habit id")
	ErrAchievementsLong = errors.New("achievements text is too long (max 5000 chars)")
)

type Category string

const (
	CategoryPhysical Category = "Physical"
	CategoryLearning Category = "Learning"
	CategoryOther    Category = "Other"
)

const (
	IconActivity  = "Activity"
	IconBook      = "Book"
	IconBarChart2 = "BarChart2"
	IconAward     = "Award"
	IconCircle    = "Circle"

	DefaultHabitName = "New Habit"
	MaxNameLen       = 100
	MaxDetailsLen    = 2000
	MaxAchievesLen   = 5000
)

var knownIcons = map[string]bool{
	IconActivity:  true,
	IconBook:      true,
	IconBarChart2: true,
	IconAward:     true,
	IconCircle:    true,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPhysical, CategoryLearning, CategoryOther:
		return true
	}
	return false
}

type Habit struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	Details   string   `json:"details"`
	Icon      string   `json:"icon"`
}

// HabitPatch carries the editable definition fields; nil fields are left untouched.
type HabitPatch struct {
	Name     *string
	Category *Category
	Icon     *string
}

// NormalizeIcon maps unknown icon tags to the generic circle.
func NormalizeIcon(icon string) string {
	if knownIcons[icon] {
		return icon
	}
	return IconCircle
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

// NewHabit builds a habit with the defaults used by the "add" action.
func NewHabit(id int) (*Habit, error) {
	if id < 1 {
		return nil, ErrInvalidHabitID
	}

	return &Habit{
		ID:       id,
		Name:     DefaultHabitName,
		Category: CategoryPhysical,
		Icon:     IconCircle,
	}, nil
}

func (h *Habit) Apply(p HabitPatch) error {
	name := h.Name
	if p.Name != nil {
		n, err := validateName(*p.Name)
		if err != nil {
			return err
		}
		name = n
	}

	category := h.Category
	if p.Category != nil {
		if !p.Category.Valid() {
			return ErrInvalidCategory
		}
		category = *p.Category
	}

	icon := h.Icon
	if p.Icon != nil {
		icon = NormalizeIcon(*p.Icon)
	}

	h.Name = name
	h.Category = category
	h.Icon = icon
	return nil
}

func (h *Habit) SetDetails(details string) error {
	if utf8.RuneCountInString(details) > MaxDetailsLen {
		return ErrHabitDetailsLong
	}
	h.Details = details
	return nil
}

// NextHabitID returns max(existing ids, 0) + 1.
func NextHabitID(habits []Habit) int {
	maxID := 0
	for _, h := range habits {
		if h.ID > maxID {
			maxID = h.ID
		}
	}
	return maxID + 1
}

// DefaultHabits is the starter list handed to users with no stored data.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: 1, Name: "Exercise (30+ min)", Category: CategoryPhysical, Icon: IconActivity},
		{ID: 2, Name: "AI Agents Study", Category: CategoryLearning, Icon: IconBook},
		{ID: 3, Name: "Algorithm Practice", Category: CategoryLearning, Icon: IconBook},
	}
}

// sanitizeHabits repairs habit lists read from storage: unknown categories fall
// back to Other, icons are normalized and entries with invalid ids are dropped.
func sanitizeHabits(habits []Habit) []Habit {
	out := make([]Habit, 0, len(habits))
	seen := make(map[int]bool, len(habits))
	for _, h := range habits {
		if h.ID < 1 || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		if !h.Category.Valid() {
			h.Category = CategoryOther
		}
		h.Icon = NormalizeIcon(h.Icon)
		out = append(out, h)
	}
	return out
}
