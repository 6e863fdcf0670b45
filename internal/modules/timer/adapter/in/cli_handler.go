package in

import (
	"context"
	"fmt"

	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	apperrors "pomo/internal/platform/errors"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, reason string) (dto.StateOutput, error) {
	return h.usecase.Reset(ctx, reason)
}

// Status resolves any elapsed phases before reporting, the same way a
// foreground app does when it comes back.
func (h CLIHandler) Status(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.AppResumed(ctx)
}

// Interrupt maps a CLI interruption name to its timer event.
func (h CLIHandler) Interrupt(ctx context.Context, kind string) (dto.StateOutput, error) {
	switch kind {
	case "call":
		return h.usecase.CallInterrupted(ctx)
	case "time-change":
		return h.usecase.TimeChanged(ctx)
	default:
		return dto.StateOutput{}, fmt.Errorf("%w: unknown interruption %q (want call or time-change)", apperrors.ErrInvalidInput, kind)
	}
}

func (h CLIHandler) Pending(ctx context.Context) (dto.NotificationOutput, bool, error) {
	return h.usecase.PendingNotification(ctx)
}

func (h CLIHandler) Run(ctx context.Context, observe func(dto.StateOutput)) error {
	return h.usecase.Run(ctx, observe)
}

// Sync delivers APP_RESUME and reports what it resolved.
func (h CLIHandler) Sync(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.AppResumed(ctx)
}
