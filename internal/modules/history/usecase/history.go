package usecase

import (
	"context"
	"errors"
	"fmt"

	"pomo/internal/modules/history/domain"
	"pomo/internal/modules/history/dto"
	historyin "pomo/internal/modules/history/port/in"
	"pomo/internal/modules/history/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordCompletion(ctx context.Context, date string) error {
	if err := i.svc.RecordCompletion(ctx, date); err != nil {
		return wrapDate(err)
	}
	return nil
}

func (i *Interactor) Stats(ctx context.Context, input dto.StatsInput) (dto.StatsOutput, error) {
	tf := domain.Timeframe(input.Range)
	if input.From != "" || input.To != "" {
		if input.From == "" || input.To == "" {
			return dto.StatsOutput{}, fmt.Errorf("%w: custom range needs both from and to", apperrors.ErrInvalidInput)
		}
		tf = domain.TimeframeCustom
	}
	switch tf {
	case "", domain.TimeframeWeek, domain.TimeframeMonth, domain.TimeframeCustom:
	default:
		return dto.StatsOutput{}, fmt.Errorf("%w: unknown range %q", apperrors.ErrInvalidInput, input.Range)
	}
	r, series, err := i.svc.Series(ctx, tf, input.From, input.To)
	if err != nil {
		return dto.StatsOutput{}, wrapDate(err)
	}
	days := make([]dto.DayOutput, 0, len(series))
	for _, e := range series {
		days = append(days, dto.DayOutput{Date: e.Date, CompletedWorkSessions: e.CompletedWorkSessions})
	}
	return dto.StatsOutput{Start: r.Start, End: r.End, Days: days, Total: domain.Total(series)}, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func wrapDate(err error) error {
	if errors.Is(err, domain.ErrInvalidDate) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return err
}
