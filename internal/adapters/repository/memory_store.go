package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var (
	_ domain.TrackerStore   = (*MemoryStore)(nil)
	_ domain.UserRepository = (*InMemoryUserRepository)(nil)
)

// MemoryStore keeps snapshots in process memory. Everything is copied on the
// way in and out.
type MemoryStore struct {
	habits  map[string][]domain.Habit
	history map[string]domain.History

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits:  make(map[string][]domain.Habit),
		history: make(map[string]domain.History),
	}
}

func (s *MemoryStore) LoadAll(ctx context.Context, userID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits, hasHabits := s.habits[userID]
	history := s.history[userID]
	if !hasHabits && len(history) == 0 {
		return nil, domain.ErrSnapshotNotFound
	}

	snap := &domain.Snapshot{History: history.Clone()}
	if hasHabits {
		snap.Habits = append([]domain.Habit{}, habits...)
	}
	return snap, nil
}

func (s *MemoryStore) SaveHabits(ctx context.Context, userID string, habits []domain.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits[userID] = append([]domain.Habit{}, habits...)
	return nil
}

func (s *MemoryStore) SaveHistoryEntry(ctx context.Context, userID, dateKey string, entry *domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.history[userID]
	if !ok {
		h = make(domain.History)
		s.history[userID] = h
	}
	h[dateKey] = entry.Clone()
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
