package out

import (
	"context"

	historyin "pomo/internal/modules/history/port/in"
	timerout "pomo/internal/modules/timer/port/out"
)

type HistoryRecorder struct {
	history historyin.Usecase
}

func NewHistoryRecorder(history historyin.Usecase) timerout.CompletionRecorder {
	return HistoryRecorder{history: history}
}

func (r HistoryRecorder) RecordCompletion(ctx context.Context, date string) error {
	return r.history.RecordCompletion(ctx, date)
}
