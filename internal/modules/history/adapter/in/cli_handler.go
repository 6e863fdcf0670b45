package in

import (
	"context"

	historydto "pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context, rangeName, from, to string) (historydto.StatsOutput, error) {
	return h.usecase.Stats(ctx, historydto.StatsInput{Range: rangeName, From: from, To: to})
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
