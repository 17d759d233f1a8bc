package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var _ domain.TrackerStore = (*CachedStore)(nil)

const snapshotTTL = 30 * time.Minute

// CachedStore caches LoadAll snapshots in redis and drops them on every
// write. Redis failures are logged and the backing store is used directly.
type CachedStore struct {
	next   domain.TrackerStore
	cache  redis.Cmdable
	logger *zap.Logger
}

func NewCachedStore(next domain.TrackerStore, cache redis.Cmdable, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (s *CachedStore) cacheKey(userID string) string {
	return fmt.Sprintf("tracker:%s", userID)
}

func (s *CachedStore) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Del(ctx, s.cacheKey(userID)).Err(); err != nil {
		s.logger.Warn("cache invalidation failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (s *CachedStore) LoadAll(ctx context.Context, userID string) (*domain.Snapshot, error) {
	key := s.cacheKey(userID)

	val, err := s.cache.Get(ctx, key).Bytes()
	if err == nil {
		var snap domain.Snapshot
		if err := json.Unmarshal(val, &snap); err == nil {
			return &snap, nil
		}

		s.logger.Warn("corrupted cache entry, cleaning up", zap.String("user_id", userID))
		s.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("cache read failed", zap.Error(err))
	}

	snap, err := s.next.LoadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if setErr := s.cache.Set(ctx, key, data, snapshotTTL).Err(); setErr != nil {
			s.logger.Warn("cache write failed", zap.Error(setErr))
		}
	}

	return snap, nil
}

func (s *CachedStore) SaveHabits(ctx context.Context, userID string, habits []domain.Habit) error {
	if err := s.next.SaveHabits(ctx, userID, habits); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CachedStore) SaveHistoryEntry(ctx context.Context, userID, dateKey string, entry *domain.HistoryEntry) error {
	if err := s.next.SaveHistoryEntry(ctx, userID, dateKey, entry); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}
