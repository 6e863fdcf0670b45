package out

import (
	"context"
	"sync"

	settingsout "pomo/internal/modules/settings/port/out"
	timerin "pomo/internal/modules/timer/port/in"
)

// TimerGuard answers lock queries against the timer usecase. The timer is
// bound after construction because the timer itself reads settings.
type TimerGuard struct {
	mu    sync.RWMutex
	timer timerin.Usecase
}

func NewTimerGuard() *TimerGuard {
	return &TimerGuard{}
}

var _ settingsout.TimerGuard = (*TimerGuard)(nil)

func (g *TimerGuard) Bind(timer timerin.Usecase) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timer = timer
}

// WorkActive resolves phases that ended while nothing was ticking before
// deciding, so an expired work phase no longer holds the lock.
func (g *TimerGuard) WorkActive(ctx context.Context) (bool, error) {
	timer := g.bound()
	if timer == nil {
		return false, nil
	}
	status, err := timer.AppResumed(ctx)
	if err != nil {
		return false, err
	}
	return status.WorkActive, nil
}

func (g *TimerGuard) SyncIdle(ctx context.Context) error {
	timer := g.bound()
	if timer == nil {
		return nil
	}
	return timer.SyncIdle(ctx)
}

func (g *TimerGuard) bound() timerin.Usecase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.timer
}
