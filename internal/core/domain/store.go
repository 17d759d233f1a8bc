package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrHabitNotFound = errors.New("habit not found")

	// ErrPersistenceUnavailable marks a backend that could not be reached or
	// refused a read/write.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrDataShape marks stored data that could not be decoded.
	ErrDataShape = errors.New("stored data has an unexpected shape")

	// ErrSnapshotNotFound is returned by LoadAll for users with no stored data.
	ErrSnapshotNotFound = errors.New("no stored tracker data")
)

// Snapshot is everything a backend holds for one user.
type Snapshot struct {
	Habits  []Habit `json:"habits"`
	History History `json:"history"`
}

// LoadError wraps a failed LoadAll with its category.
type LoadError struct {
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load tracker data: %v: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func NewLoadError(kind, err error) error {
	return &LoadError{Kind: kind, Err: err}
}

type TrackerStore interface {
	// LoadAll returns the stored habits and history of a user.
	// Failures wrap ErrPersistenceUnavailable or ErrDataShape; users without
	// data get ErrSnapshotNotFound.
	LoadAll(ctx context.Context, userID string) (*Snapshot, error)

	// SaveHabits replaces the stored habit list.
	SaveHabits(ctx context.Context, userID string, habits []Habit) error

	// SaveHistoryEntry upserts one day of history.
	SaveHistoryEntry(ctx context.Context, userID, dateKey string, entry *HistoryEntry) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
