package out

import (
	"context"

	hookdto "pomo/internal/modules/hook/dto"
	hookin "pomo/internal/modules/hook/port/in"
	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// HookDispatcher forwards timer effects to external hooks.
type HookDispatcher struct {
	hooks hookin.Usecase
}

func NewHookDispatcher(hooks hookin.Usecase) timerout.HookDispatcher {
	return HookDispatcher{hooks: hooks}
}

func (d HookDispatcher) Dispatch(ctx context.Context, effect domain.Effect, at int64) {
	d.hooks.Dispatch(ctx, toHookEvent(effect, at))
}

func toHookEvent(effect domain.Effect, at int64) hookdto.EventInput {
	return hookdto.EventInput{
		Kind:          string(effect.Kind),
		Phase:         string(effect.Phase),
		PlannedEndMs:  effect.PlannedEndTimestamp,
		CompletedWork: effect.CompletedWork,
		Reason:        string(effect.Reason),
		AtMs:          at,
	}
}
