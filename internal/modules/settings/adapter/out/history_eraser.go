package out

import (
	"context"

	historyin "pomo/internal/modules/history/port/in"
	settingsout "pomo/internal/modules/settings/port/out"
)

type HistoryEraser struct {
	history historyin.Usecase
}

func NewHistoryEraser(history historyin.Usecase) settingsout.HistoryEraser {
	return HistoryEraser{history: history}
}

func (e HistoryEraser) Clear(ctx context.Context) error {
	return e.history.Clear(ctx)
}
