package in

import (
	"context"

	"pomo/internal/modules/history/dto"
)

type Usecase interface {
	RecordCompletion(ctx context.Context, date string) error
	Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error)
	Clear(ctx context.Context) error
}
