package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type habitEnvelope struct {
	Habit   *domain.Habit         `json:"habit"`
	Tracker *services.TrackerView `json:"tracker"`
}

func TestHabitHandler_Lifecycle(t *testing.T) {
	env := setupTrackerRouter(t, nil)
	const userID = "user-habits"

	t.Run("1. Create appends a default habit", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/habits", userID, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decode[habitEnvelope](t, w)
		require.NotNil(t, resp.Habit)
		assert.Equal(t, 4, resp.Habit.ID)
		assert.Equal(t, domain.DefaultHabitName, resp.Habit.Name)
		assert.Equal(t, domain.CategoryPhysical, resp.Habit.Category)
		assert.Len(t, resp.Tracker.Habits, 4)
	})

	t.Run("2. Update renames and recategorizes", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/habits/4", userID, map[string]string{
			"name":     "  Read a paper  ",
			"category": "Learning",
			"icon":     "not-an-icon",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[habitEnvelope](t, w)
		assert.Equal(t, "Read a paper", resp.Habit.Name)
		assert.Equal(t, domain.CategoryLearning, resp.Habit.Category)
		assert.Equal(t, domain.IconCircle, resp.Habit.Icon)
	})

	t.Run("3. Toggle marks the habit done for today", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/habits/4/toggle", userID, nil)

		require.Equal(t, http.StatusOK, w.Code)
		view := decode[services.TrackerView](t, w)
		assert.True(t, view.Habits[3].Completed)
		assert.Equal(t, 25, view.Completion)
		assert.Equal(t, domain.Streaks{Learning: 1}, view.Streaks)
	})

	t.Run("4. Details are stored for the viewed day", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/habits/4/details", userID, map[string]string{"details": "Attention is all you need"})

		require.Equal(t, http.StatusOK, w.Code)
		view := decode[services.TrackerView](t, w)
		assert.Equal(t, "Attention is all you need", view.Habits[3].Details)
	})

	t.Run("5. Delete removes the definition", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/habits/4", userID, nil)

		require.Equal(t, http.StatusOK, w.Code)
		view := decode[services.TrackerView](t, w)
		assert.Len(t, view.Habits, 3)
		assert.Equal(t, domain.Streaks{}, view.Streaks)
	})

	t.Run("6. Everything reached the store in order", func(t *testing.T) {
		assert.Eventually(t, func() bool {
			snap, err := env.store.LoadAll(context.Background(), userID)
			if err != nil || len(snap.Habits) != 3 {
				return false
			}
			entry := snap.History["2024-1-3"]
			return entry != nil && entry.Habits[4] && entry.HabitDetails[4] == "Attention is all you need"
		}, time.Second, 10*time.Millisecond)
	})
}

func TestHabitHandler_Errors(t *testing.T) {
	env := setupTrackerRouter(t, nil)
	const userID = "user-errors"

	tests := []struct {
		name       string
		method     string
		path       string
		payload    any
		wantStatus int
		wantError  string
	}{
		{
			name:       "Unknown habit",
			method:     http.MethodPost,
			path:       "/api/v1/habits/99/toggle",
			wantStatus: http.StatusNotFound,
			wantError:  domain.ErrHabitNotFound.Error(),
		},
		{
			name:       "Non numeric id",
			method:     http.MethodPost,
			path:       "/api/v1/habits/abc/toggle",
			wantStatus: http.StatusBadRequest,
			wantError:  domain.ErrInvalidHabitID.Error(),
		},
		{
			name:       "Empty name",
			method:     http.MethodPut,
			path:       "/api/v1/habits/1",
			payload:    map[string]string{"name": "   "},
			wantStatus: http.StatusBadRequest,
			wantError:  domain.ErrHabitNameEmpty.Error(),
		},
		{
			name:       "Unknown category",
			method:     http.MethodPut,
			path:       "/api/v1/habits/1",
			payload:    map[string]string{"category": "Social"},
			wantStatus: http.StatusBadRequest,
			wantError:  domain.ErrInvalidCategory.Error(),
		},
		{
			name:       "Delete unknown habit",
			method:     http.MethodDelete,
			path:       "/api/v1/habits/42",
			wantStatus: http.StatusNotFound,
			wantError:  domain.ErrHabitNotFound.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, userID, tt.payload)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantError)
		})
	}

	t.Run("Failed edits leave the list untouched", func(t *testing.T) {
		view := decode[services.TrackerView](t, env.do(t, http.MethodGet, "/api/v1/tracker", userID, nil))

		assert.Equal(t, domain.DefaultHabits(), view.Habits)
	})
}
