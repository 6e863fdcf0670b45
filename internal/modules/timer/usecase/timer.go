package usecase

import (
	"context"
	"fmt"
	"time"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/modules/timer/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	controller *service.Controller
	tickerOpts []service.TickerOption
}

func NewInteractor(controller *service.Controller, tickerOpts ...service.TickerOption) timerin.Usecase {
	return &Interactor{controller: controller, tickerOpts: tickerOpts}
}

// Start begins an idle session or resumes a paused one.
func (i *Interactor) Start(ctx context.Context) (dto.StateOutput, error) {
	snapshot, err := i.controller.Snapshot(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	if snapshot.State.Status == domain.StatusPaused {
		return i.apply(ctx, domain.EventResume, domain.WarningNone)
	}
	return i.apply(ctx, domain.EventStart, domain.WarningNone)
}

func (i *Interactor) Pause(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventPause, domain.WarningNone)
}

func (i *Interactor) Resume(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventResume, domain.WarningNone)
}

func (i *Interactor) Reset(ctx context.Context, reason string) (dto.StateOutput, error) {
	warning := domain.Warning(reason)
	if !warning.Valid() {
		return dto.StateOutput{}, fmt.Errorf("%w: unknown reset reason %q", apperrors.ErrInvalidInput, reason)
	}
	return i.apply(ctx, domain.EventReset, warning)
}

func (i *Interactor) Tick(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventTick, domain.WarningNone)
}

func (i *Interactor) AppResumed(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventAppResume, domain.WarningNone)
}

func (i *Interactor) CallInterrupted(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventCallInterruption, domain.WarningNone)
}

func (i *Interactor) TimeChanged(ctx context.Context) (dto.StateOutput, error) {
	return i.apply(ctx, domain.EventTimeChange, domain.WarningNone)
}

func (i *Interactor) Status(ctx context.Context) (dto.StateOutput, error) {
	snapshot, err := i.controller.Snapshot(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(snapshot), nil
}

func (i *Interactor) PendingNotification(ctx context.Context) (dto.NotificationOutput, bool, error) {
	pending, ok, err := i.controller.Pending(ctx)
	if err != nil || !ok {
		return dto.NotificationOutput{}, ok, err
	}
	return dto.NotificationOutput{
		ID:     pending.ID,
		Phase:  string(pending.Phase),
		FireAt: time.UnixMilli(pending.FireAt).UTC(),
		Title:  pending.Title,
		Body:   pending.Body,
	}, true, nil
}

func (i *Interactor) SyncIdle(ctx context.Context) error {
	return i.controller.SyncIdle(ctx)
}

func (i *Interactor) DismissBanner(_ context.Context) error {
	i.controller.DismissBanner()
	return nil
}

func (i *Interactor) Run(ctx context.Context, observe func(dto.StateOutput)) error {
	opts := append([]service.TickerOption{}, i.tickerOpts...)
	if observe != nil {
		opts = append(opts, service.WithObserver(func(snapshot service.Snapshot) {
			observe(toOutput(snapshot))
		}))
	}
	return service.NewTicker(i.controller, opts...).Run(ctx)
}

func (i *Interactor) apply(ctx context.Context, kind domain.EventKind, reason domain.Warning) (dto.StateOutput, error) {
	snapshot, err := i.controller.Apply(ctx, kind, reason)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(snapshot), nil
}

func toOutput(snapshot service.Snapshot) dto.StateOutput {
	state := snapshot.State
	cfg := snapshot.Options.Config
	out := dto.StateOutput{
		Phase:                string(state.Phase),
		Status:               string(state.Status),
		RemainingMs:          domain.RemainingTime(state, snapshot.Now),
		CycleLabel:           domain.CycleProgressLabel(state, cfg.Preset.LongBreakInterval),
		PauseCount:           state.PauseCountInCurrentSession,
		PausesLeft:           -1,
		CompletedWorkInCycle: state.CompletedWorkInCycle,
		Warning:              string(state.Warning),
		Banner:               string(snapshot.Banner),
		WorkActive:           state.Phase == domain.PhaseWork && state.Status != domain.StatusIdle,
		PresetName:           cfg.Preset.Name,
	}
	if state.PlannedEndTimestamp != nil {
		end := time.UnixMilli(*state.PlannedEndTimestamp).UTC()
		out.PlannedEnd = &end
	}
	if state.LastCompletedPhase != nil {
		out.LastCompletedPhase = string(*state.LastCompletedPhase)
	}
	if cfg.FocusMode == domain.FocusStrict && state.Phase == domain.PhaseWork {
		out.PausesLeft = max(0, cfg.StrictPauseLimit-state.PauseCountInCurrentSession)
	}
	for _, phase := range snapshot.Completed {
		out.Completed = append(out.Completed, string(phase))
	}
	return out
}
