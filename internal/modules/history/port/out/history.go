package out

import (
	"context"

	"pomo/internal/modules/history/domain"
)

type Store interface {
	// Modify hands the stored entries for date to apply and writes back the
	// entry apply returns for that date, atomically.
	Modify(ctx context.Context, date string, apply func(current []domain.DailyEntry) []domain.DailyEntry) error
	// List returns stored entries with start <= date <= end, ordered by date.
	List(ctx context.Context, start, end string) ([]domain.DailyEntry, error)
	Clear(ctx context.Context) error
}
