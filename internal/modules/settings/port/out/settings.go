package out

import (
	"context"

	"pomo/internal/modules/settings/domain"
)

type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

// TimerGuard exposes the parts of the timer that settings changes depend on.
type TimerGuard interface {
	WorkActive(ctx context.Context) (bool, error)
	SyncIdle(ctx context.Context) error
}

type HistoryEraser interface {
	Clear(ctx context.Context) error
}
