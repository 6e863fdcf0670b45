package usecase

import (
	"context"

	"pomo/internal/modules/hook/domain"
	"pomo/internal/modules/hook/dto"
	hookin "pomo/internal/modules/hook/port/in"
	"pomo/internal/modules/hook/service"
)

type Interactor struct {
	svc *service.HookService
}

func NewInteractor(svc *service.HookService) hookin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.HookInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.EventInput) {
	i.svc.Dispatch(ctx, toEvent(input))
}

func (i *Interactor) Send(ctx context.Context, name string, input dto.EventInput) error {
	return i.svc.Send(ctx, name, toEvent(input))
}

func toEvent(input dto.EventInput) domain.Event {
	return domain.Event{
		Kind:          input.Kind,
		Phase:         input.Phase,
		PlannedEndMs:  input.PlannedEndMs,
		CompletedWork: input.CompletedWork,
		Reason:        input.Reason,
		AtMs:          input.AtMs,
	}
}
