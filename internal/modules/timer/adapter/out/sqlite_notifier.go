package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
)

// SQLiteNotifier keeps the single pending session-end notification in the
// scheduled_notifications table, keyed by domain.NotificationID.
type SQLiteNotifier struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteNotifier(db *sql.DB, clk clock.Clock) timerout.Notifier {
	return &SQLiteNotifier{db: db, clock: clk}
}

func (n *SQLiteNotifier) Schedule(ctx context.Context, phase domain.Phase, plannedEnd int64) error {
	title, body := domain.NotificationText(phase)
	_, err := n.db.ExecContext(ctx, `
INSERT INTO scheduled_notifications(id, phase, fire_at, title, body, created_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  phase=excluded.phase,
  fire_at=excluded.fire_at,
  title=excluded.title,
  body=excluded.body,
  created_at=excluded.created_at`,
		domain.NotificationID, string(phase), plannedEnd, title, body, clock.NowMillis(n.clock),
	)
	if err != nil {
		return fmt.Errorf("schedule notification: %w", err)
	}
	return nil
}

func (n *SQLiteNotifier) Cancel(ctx context.Context) error {
	if _, err := n.db.ExecContext(ctx, `DELETE FROM scheduled_notifications WHERE id = ?`, domain.NotificationID); err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}
	return nil
}

func (n *SQLiteNotifier) Pending(ctx context.Context) (domain.ScheduledNotification, bool, error) {
	row := n.db.QueryRowContext(ctx, `SELECT id, phase, fire_at, title, body FROM scheduled_notifications WHERE id = ?`, domain.NotificationID)
	var (
		out   domain.ScheduledNotification
		phase string
	)
	if err := row.Scan(&out.ID, &phase, &out.FireAt, &out.Title, &out.Body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ScheduledNotification{}, false, nil
		}
		return domain.ScheduledNotification{}, false, fmt.Errorf("read pending notification: %w", err)
	}
	out.Phase = domain.Phase(phase)
	return out, true, nil
}
