package in

import (
	"context"

	"pomo/internal/modules/hook/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.HookInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// Dispatch fans an event out to every eligible hook. Hook failures are
	// logged, never returned.
	Dispatch(ctx context.Context, input dto.EventInput)
	// Send delivers an event to one named hook and reports its failure.
	Send(ctx context.Context, name string, input dto.EventInput) error
}
