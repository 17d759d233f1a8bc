package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"

	_ "modernc.org/sqlite"
)

var _ domain.TrackerStore = (*SQLiteStore)(nil)

// SQLiteStore is the local backend: one database file on this machine.
type SQLiteStore struct {
	documentStore
}

func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{
		documentStore: documentStore{
			db:           db,
			habitsTable:  "tracker_habits",
			historyTable: "tracker_history",
		},
	}
}

// OpenSQLite opens (creating if missing) the database at path in WAL mode and
// applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
