package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/workers"
)

const (
	warnLoadFailed    = "Could not load your saved data. Showing default habits; reload to try again."
	warnShapeMismatch = "Your saved data could not be read. Showing default habits; reload to try again."
	warnSaveHabits    = "Could not save your habit list. Changes are kept for this session only."
	warnSaveDay       = "Could not save this day's progress. Changes are kept for this session only."
)

// Persister accepts durable writes. *workers.PersistWorker implements it.
type Persister interface {
	Enqueue(job workers.PersistJob) *workers.PersistReceipt
}

// TrackerView is what a client renders for the viewed day.
type TrackerView struct {
	ViewDate     string           `json:"view_date"`
	Label        string           `json:"label"`
	IsToday      bool             `json:"is_today"`
	Habits       []domain.Habit   `json:"habits"`
	Achievements string           `json:"achievements"`
	Completion   int              `json:"completion"`
	Streaks      domain.Streaks   `json:"streaks"`
	Warnings     []domain.Warning `json:"warnings"`
}

// MutationResult carries the committed view and the receipts of the
// background writes it triggered.
type MutationResult struct {
	View     *TrackerView
	Habit    *domain.Habit
	Receipts []*workers.PersistReceipt
}

type session struct {
	mu      sync.Mutex
	tracker *domain.Tracker
}

// TrackerService keeps one in-memory tracker session per user. Every
// mutation commits to the session first and is then handed to the
// persister; a failed write becomes a warning on the session.
type TrackerService struct {
	store     domain.TrackerStore
	persister Persister
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type TrackerOption func(*TrackerService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TrackerOption {
	return func(s *TrackerService) {
		s.now = now
	}
}

// WithLocation sets the timezone in which calendar days are counted.
func WithLocation(loc *time.Location) TrackerOption {
	return func(s *TrackerService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *zap.Logger) TrackerOption {
	return func(s *TrackerService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewTrackerService(store domain.TrackerStore, persister Persister, opts ...TrackerOption) *TrackerService {
	s := &TrackerService{
		store:     store,
		persister: persister,
		loc:       time.Local,
		now:       time.Now,
		logger:    zap.NewNop(),
		sessions:  make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TrackerService) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *TrackerService) session(ctx context.Context, userID string) *session {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.tracker == nil {
		sess.tracker = s.load(ctx, userID, nil)
	}
	return sess
}

// load builds a fresh tracker from the store. When prev is given and loading
// fails, prev is kept and only a warning is added.
func (s *TrackerService) load(ctx context.Context, userID string, prev *domain.Tracker) *domain.Tracker {
	now := s.clock()

	snap, err := s.store.LoadAll(ctx, userID)
	if err == nil || errors.Is(err, domain.ErrSnapshotNotFound) {
		t := domain.NewTracker(userID, snap, now)
		if prev != nil {
			t.Warnings = prev.Warnings
		}
		return t
	}

	msg := warnLoadFailed
	if errors.Is(err, domain.ErrDataShape) {
		msg = warnShapeMismatch
	}
	s.logger.Warn("tracker load failed",
		zap.String("user_id", userID),
		zap.Error(err))

	t := prev
	if t == nil {
		t = domain.NewTracker(userID, nil, now)
	}
	t.AddWarning(msg, now)
	return t
}

// View returns the current state of the user's session, loading it on first
// access.
func (s *TrackerService) View(ctx context.Context, userID string) *TrackerView {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.buildView(sess.tracker)
}

// Reload re-reads the store. On failure the session keeps its state and
// gains a warning.
func (s *TrackerService) Reload(ctx context.Context, userID string) *TrackerView {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.tracker = s.load(ctx, userID, sess.tracker)
	return s.buildView(sess.tracker)
}

func (s *TrackerService) Streaks(ctx context.Context, userID string) domain.Streaks {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.tracker.Streaks(s.clock())
}

// Snapshot returns a detached copy of the user's habits and history together
// with the current streaks.
func (s *TrackerService) Snapshot(ctx context.Context, userID string) (*domain.Snapshot, domain.Streaks) {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := &domain.Snapshot{
		Habits:  sess.tracker.HabitsCopy(),
		History: sess.tracker.History.Clone(),
	}
	return snap, sess.tracker.Streaks(s.clock())
}

func (s *TrackerService) ToggleHabit(ctx context.Context, userID string, id int) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		key, err := t.ToggleHabit(id)
		if err != nil {
			return nil, nil, err
		}
		return nil, []workers.PersistJob{s.entryJob(t, key)}, nil
	})
}

func (s *TrackerService) UpdateDetails(ctx context.Context, userID string, id int, details string) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		key, err := t.UpdateDetails(id, details)
		if err != nil {
			return nil, nil, err
		}
		return nil, []workers.PersistJob{s.entryJob(t, key)}, nil
	})
}

func (s *TrackerService) UpdateHabit(ctx context.Context, userID string, id int, patch domain.HabitPatch) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		h, err := t.UpdateHabit(id, patch)
		if err != nil {
			return nil, nil, err
		}
		return h, []workers.PersistJob{s.habitsJob(t)}, nil
	})
}

func (s *TrackerService) AddHabit(ctx context.Context, userID string) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		h, err := t.AddHabit()
		if err != nil {
			return nil, nil, err
		}
		return h, []workers.PersistJob{s.habitsJob(t)}, nil
	})
}

func (s *TrackerService) DeleteHabit(ctx context.Context, userID string, id int) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		if err := t.DeleteHabit(id); err != nil {
			return nil, nil, err
		}
		return nil, []workers.PersistJob{s.habitsJob(t)}, nil
	})
}

func (s *TrackerService) SaveAchievements(ctx context.Context, userID, text string) (*MutationResult, error) {
	return s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		key, err := t.SaveAchievements(text)
		if err != nil {
			return nil, nil, err
		}
		return nil, []workers.PersistJob{s.entryJob(t, key)}, nil
	})
}

// ChangeDate only moves the view; nothing is written.
func (s *TrackerService) ChangeDate(ctx context.Context, userID string, days int) (*TrackerView, error) {
	res, err := s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		return nil, nil, t.ChangeDate(days)
	})
	if err != nil {
		return nil, err
	}
	return res.View, nil
}

func (s *TrackerService) DismissWarning(ctx context.Context, userID string, index int) (*TrackerView, error) {
	res, err := s.mutate(ctx, userID, func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error) {
		return nil, nil, t.DismissWarning(index)
	})
	if err != nil {
		return nil, err
	}
	return res.View, nil
}

func (s *TrackerService) ClearWarnings(ctx context.Context, userID string) *TrackerView {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.tracker.ClearWarnings()
	return s.buildView(sess.tracker)
}

type mutation func(t *domain.Tracker) (*domain.Habit, []workers.PersistJob, error)

// mutate runs fn under the session lock and enqueues its writes before the
// lock is released, so two requests of the same user reach the store in the
// order they were applied.
func (s *TrackerService) mutate(ctx context.Context, userID string, fn mutation) (*MutationResult, error) {
	sess := s.session(ctx, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	h, jobs, err := fn(sess.tracker)
	if err != nil {
		return nil, err
	}

	res := &MutationResult{Habit: h}
	for _, job := range jobs {
		job.OnFailure = s.failureHandler(sess, job.Kind)
		res.Receipts = append(res.Receipts, s.persister.Enqueue(job))
	}
	res.View = s.buildView(sess.tracker)
	return res, nil
}

func (s *TrackerService) failureHandler(sess *session, kind workers.JobKind) func(error) {
	msg := warnSaveDay
	if kind == workers.JobSaveHabits {
		msg = warnSaveHabits
	}
	// Runs on the worker goroutine: never wait for the session lock there,
	// a Reload may hold it for a whole LoadAll.
	return func(err error) {
		go func() {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			if sess.tracker != nil {
				sess.tracker.AddWarning(msg, s.clock())
			}
		}()
	}
}

func (s *TrackerService) habitsJob(t *domain.Tracker) workers.PersistJob {
	return workers.PersistJob{
		Kind:   workers.JobSaveHabits,
		UserID: t.UserID,
		Habits: t.HabitsCopy(),
	}
}

func (s *TrackerService) entryJob(t *domain.Tracker, key string) workers.PersistJob {
	return workers.PersistJob{
		Kind:    workers.JobSaveHistoryEntry,
		UserID:  t.UserID,
		DateKey: key,
		Entry:   t.EntryCopy(key),
	}
}

func (s *TrackerService) buildView(t *domain.Tracker) *TrackerView {
	now := s.clock()

	warnings := make([]domain.Warning, len(t.Warnings))
	copy(warnings, t.Warnings)

	return &TrackerView{
		ViewDate:     t.ViewKey(),
		Label:        t.ViewLabel(),
		IsToday:      t.IsViewingToday(now),
		Habits:       t.HabitsCopy(),
		Achievements: t.Achievements,
		Completion:   t.Completion(),
		Streaks:      t.Streaks(now),
		Warnings:     warnings,
	}
}
