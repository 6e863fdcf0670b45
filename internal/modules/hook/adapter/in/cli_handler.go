package in

import (
	"context"

	"pomo/internal/modules/hook/dto"
	hookin "pomo/internal/modules/hook/port/in"
)

type CLIHandler struct {
	usecase hookin.Usecase
}

func NewCLIHandler(usecase hookin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.HookInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

// Test sends a synthetic event of the given kind to one hook.
func (h CLIHandler) Test(ctx context.Context, name, kind string, atMs int64) error {
	input := dto.EventInput{Kind: kind, AtMs: atMs}
	switch kind {
	case "session-completed":
		input.Phase = "work"
		input.CompletedWork = true
	case "schedule-notification":
		input.Phase = "work"
		input.PlannedEndMs = atMs + 25*60*1000
	case "banner":
		input.Reason = "time_changed"
	}
	return h.usecase.Send(ctx, name, input)
}
