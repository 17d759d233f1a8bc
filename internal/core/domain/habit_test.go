package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func catPtr(c Category) *Category { return &c }

func TestNewHabit(t *testing.T) {
	t.Run("Success: Applies add defaults", func(t *testing.T) {
		h, err := NewHabit(4)

		require.NoError(t, err)
		assert.Equal(t, 4, h.ID)
		assert.Equal(t, DefaultHabitName, h.Name)
		assert.Equal(t, CategoryPhysical, h.Category)
		assert.Equal(t, IconCircle, h.Icon)
		assert.False(t, h.Completed)
		assert.Empty(t, h.Details)
	})

	t.Run("Error: Non positive id", func(t *testing.T) {
		_, err := NewHabit(0)
		assert.Equal(t, ErrInvalidHabitID, err)
	})
}

func TestNextHabitID(t *testing.T) {
	assert.Equal(t, 1, NextHabitID(nil))
	assert.Equal(t, 4, NextHabitID(DefaultHabits()))
	assert.Equal(t, 11, NextHabitID([]Habit{{ID: 10}, {ID: 2}}))
}

func TestHabit_Apply(t *testing.T) {
	tests := []struct {
		name    string
		patch   HabitPatch
		wantErr error
		check   func(t *testing.T, h Habit)
	}{
		{
			name:  "Rename trims whitespace",
			patch: HabitPatch{Name: strPtr("  Swim  ")},
			check: func(t *testing.T, h Habit) { assert.Equal(t, "Swim", h.Name) },
		},
		{
			name:    "Empty name rejected",
			patch:   HabitPatch{Name: strPtr("   ")},
			wantErr: ErrHabitNameEmpty,
		},
		{
			name:    "Long name rejected",
			patch:   HabitPatch{Name: strPtr(strings.Repeat("x", MaxNameLen+1))},
			wantErr: ErrHabitNameTooLong,
		},
		{
			name:  "Recategorize",
			patch: HabitPatch{Category: catPtr(CategoryLearning)},
			check: func(t *testing.T, h Habit) { assert.Equal(t, CategoryLearning, h.Category) },
		},
		{
			name:    "Unknown category rejected",
			patch:   HabitPatch{Category: catPtr("Spiritual")},
			wantErr: ErrInvalidCategory,
		},
		{
			name:  "Unknown icon falls back to circle",
			patch: HabitPatch{Icon: strPtr("Rocket")},
			check: func(t *testing.T, h Habit) { assert.Equal(t, IconCircle, h.Icon) },
		},
		{
			name:  "Known icon kept",
			patch: HabitPatch{Icon: strPtr(IconAward)},
			check: func(t *testing.T, h Habit) { assert.Equal(t, IconAward, h.Icon) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Habit{ID: 1, Name: "Run", Category: CategoryPhysical, Icon: IconActivity}
			original := h

			err := h.Apply(tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, original, h, "failed patch must not change the habit")
				return
			}
			require.NoError(t, err)
			tt.check(t, h)
		})
	}
}

func TestHabit_SetDetails(t *testing.T) {
	h := Habit{ID: 1}

	require.NoError(t, h.SetDetails("ran along the river"))
	assert.Equal(t, "ran along the river", h.Details)

	err := h.SetDetails(strings.Repeat("y", MaxDetailsLen+1))
	assert.ErrorIs(t, err, ErrHabitDetailsLong)
	assert.Equal(t, "ran along the river", h.Details)
}

func TestSanitizeHabits(t *testing.T) {
	in := []Habit{
		{ID: 1, Name: "Run", Category: "physical", Icon: "Activity"},
		{ID: 1, Name: "Duplicate"},
		{ID: 0, Name: "No id"},
		{ID: 2, Name: "Read", Category: CategoryLearning, Icon: ""},
	}

	out := sanitizeHabits(in)

	require.Len(t, out, 2)
	assert.Equal(t, CategoryOther, out[0].Category)
	assert.Equal(t, IconActivity, out[0].Icon)
	assert.Equal(t, IconCircle, out[1].Icon)
}
