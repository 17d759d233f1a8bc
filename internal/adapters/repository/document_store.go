package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

const queryTimeout = 3 * time.Second

// documentStore keeps one JSON document for the habit list and one per
// history day. SQLiteStore and PostgresStore only differ in table names and
// column types.
type documentStore struct {
	db           *sqlx.DB
	habitsTable  string
	historyTable string
}

type historyRow struct {
	DateKey string `db:"date_key"`
	Doc     []byte `db:"doc"`
}

func (s *documentStore) LoadAll(ctx context.Context, userID string) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var habitsDoc []byte
	habitsQuery := s.db.Rebind(fmt.Sprintf(`SELECT doc FROM %s WHERE user_id = ?`, s.habitsTable))
	err := s.db.GetContext(ctx, &habitsDoc, habitsQuery, userID)
	hasHabits := true
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewLoadError(domain.ErrPersistenceUnavailable, err)
		}
		hasHabits = false
	}

	var rows []historyRow
	historyQuery := s.db.Rebind(fmt.Sprintf(`SELECT date_key, doc FROM %s WHERE user_id = ?`, s.historyTable))
	if err := s.db.SelectContext(ctx, &rows, historyQuery, userID); err != nil {
		return nil, domain.NewLoadError(domain.ErrPersistenceUnavailable, err)
	}

	if !hasHabits && len(rows) == 0 {
		return nil, domain.ErrSnapshotNotFound
	}

	snap := &domain.Snapshot{History: make(domain.History, len(rows))}
	if hasHabits {
		if err := json.Unmarshal(habitsDoc, &snap.Habits); err != nil {
			return nil, domain.NewLoadError(domain.ErrDataShape, fmt.Errorf("habits document: %w", err))
		}
	}
	for _, row := range rows {
		var entry *domain.HistoryEntry
		if err := json.Unmarshal(row.Doc, &entry); err != nil {
			return nil, domain.NewLoadError(domain.ErrDataShape, fmt.Errorf("history %s: %w", row.DateKey, err))
		}
		snap.History[row.DateKey] = entry
	}

	return snap, nil
}

func (s *documentStore) SaveHabits(ctx context.Context, userID string, habits []domain.Habit) error {
	if habits == nil {
		habits = []domain.Habit{}
	}
	doc, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("repository: marshal habits: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := s.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (user_id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, s.habitsTable))

	if _, err := s.db.ExecContext(ctx, query, userID, string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save habits failed: %w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *documentStore) SaveHistoryEntry(ctx context.Context, userID, dateKey string, entry *domain.HistoryEntry) error {
	if entry == nil {
		entry = domain.NewHistoryEntry()
	}
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("repository: marshal history entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := s.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (user_id, date_key, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, date_key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, s.historyTable))

	if _, err := s.db.ExecContext(ctx, query, userID, dateKey, string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save history %s failed: %w: %w", dateKey, domain.ErrPersistenceUnavailable, err)
	}
	return nil
}
