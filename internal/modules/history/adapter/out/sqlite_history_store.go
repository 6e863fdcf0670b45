package out

import (
	"context"
	"database/sql"
	"fmt"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(db *sql.DB) historyout.Store {
	return &SQLiteHistoryStore{db: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Modify runs apply inside an immediate transaction; the read and the
// write see no other writer.
func (s *SQLiteHistoryStore) Modify(ctx context.Context, date string, apply func([]domain.DailyEntry) []domain.DailyEntry) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `BEGIN IMMEDIATE`); err != nil {
		return fmt.Errorf("begin daily history update: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), `ROLLBACK`)
		}
	}()

	current, err := listEntries(ctx, conn, date, date)
	if err != nil {
		return err
	}
	for _, entry := range apply(current) {
		if entry.Date != date {
			continue
		}
		if _, err = conn.ExecContext(ctx, `
INSERT INTO daily_history(date, completed_work_sessions)
VALUES(?, ?)
ON CONFLICT(date) DO UPDATE SET
  completed_work_sessions = excluded.completed_work_sessions`,
			entry.Date, entry.CompletedWorkSessions,
		); err != nil {
			return fmt.Errorf("write daily history: %w", err)
		}
	}
	if _, err = conn.ExecContext(ctx, `COMMIT`); err != nil {
		return fmt.Errorf("commit daily history update: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) List(ctx context.Context, start, end string) ([]domain.DailyEntry, error) {
	return listEntries(ctx, s.db, start, end)
}

func listEntries(ctx context.Context, q queryer, start, end string) ([]domain.DailyEntry, error) {
	rows, err := q.QueryContext(ctx, `
SELECT date, completed_work_sessions
FROM daily_history
WHERE date >= ? AND date <= ?
ORDER BY date`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query daily history: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyEntry
	for rows.Next() {
		var entry domain.DailyEntry
		if err := rows.Scan(&entry.Date, &entry.CompletedWorkSessions); err != nil {
			return nil, fmt.Errorf("scan daily history: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *SQLiteHistoryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_history`); err != nil {
		return fmt.Errorf("clear daily history: %w", err)
	}
	return nil
}
