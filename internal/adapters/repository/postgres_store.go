package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.TrackerStore = (*PostgresStore)(nil)

// PostgresStore is the remote backend: JSONB documents keyed by user.
type PostgresStore struct {
	documentStore
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		documentStore: documentStore{
			db:           db,
			habitsTable:  "habit_documents",
			historyTable: "history_documents",
		},
	}
}

// ConnectPostgres opens a pgx-backed pool and verifies it with a ping.
func ConnectPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
