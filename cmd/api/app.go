package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// app holds the storage side of the process: the tracker store, the user
// repository and the connections behind them.
type app struct {
	store domain.TrackerStore
	users domain.UserRepository
	db    *sqlx.DB
	redis *redis.Client
}

func openApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}

	switch cfg.Backend {
	case config.BackendMemory:
		a.store = repository.NewMemoryStore()
		a.users = repository.NewInMemoryUserRepository()

	case config.BackendLocal:
		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.store = repository.NewSQLiteStore(db)
		a.users = repository.NewSQLUserRepository(db)
		logger.Info("using local store", zap.String("path", cfg.SQLitePath))

	case config.BackendRemote:
		db, err := repository.ConnectPostgres(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, db, repository.DialectPostgres); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		a.store = repository.NewPostgresStore(db)
		a.users = repository.NewSQLUserRepository(db)
		logger.Info("using remote store", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			a.redis = rdb
			a.store = repository.NewCachedStore(a.store, rdb, logger)
		}
	}

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
