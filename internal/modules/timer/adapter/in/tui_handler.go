package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
)

// TUIHandler exposes the calls the terminal UI makes, including the
// periodic tick it drives itself.
type TUIHandler struct {
	CLIHandler
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{CLIHandler: NewCLIHandler(usecase)}
}

func (h TUIHandler) Tick(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h TUIHandler) DismissBanner(ctx context.Context) error {
	return h.usecase.DismissBanner(ctx)
}
