package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

func TestStreakText(t *testing.T) {
	assert.Contains(t, StreakText(0), "0 days")
	assert.Contains(t, StreakText(1), "1 day")
	assert.NotContains(t, StreakText(1), "days")
	assert.Contains(t, StreakText(12), "12 days")
}

func TestHabitLine(t *testing.T) {
	done := HabitLine(domain.Habit{Name: "Run", Category: domain.CategoryPhysical, Completed: true})
	todo := HabitLine(domain.Habit{Name: "Read", Category: domain.CategoryLearning})

	assert.Contains(t, done, IconCheck)
	assert.Contains(t, done, "Run")
	assert.Contains(t, done, "Physical")
	assert.Contains(t, todo, IconTodo)
	assert.Contains(t, todo, "Learning")
}

func TestStreakPanel(t *testing.T) {
	out := StreakPanel(domain.Streaks{Exercise: 3, Learning: 0})

	assert.Contains(t, out, "Exercise")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "Learning")
	assert.Contains(t, out, "0 days")
}
