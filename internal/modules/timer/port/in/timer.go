package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Resume(ctx context.Context) (dto.StateOutput, error)
	Reset(ctx context.Context, reason string) (dto.StateOutput, error)
	Tick(ctx context.Context) (dto.StateOutput, error)
	AppResumed(ctx context.Context) (dto.StateOutput, error)
	CallInterrupted(ctx context.Context) (dto.StateOutput, error)
	TimeChanged(ctx context.Context) (dto.StateOutput, error)
	Status(ctx context.Context) (dto.StateOutput, error)
	PendingNotification(ctx context.Context) (dto.NotificationOutput, bool, error)
	SyncIdle(ctx context.Context) error
	DismissBanner(ctx context.Context) error
	Run(ctx context.Context, observe func(dto.StateOutput)) error
}
