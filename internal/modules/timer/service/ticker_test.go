package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/service"
)

func TestTickerAdvancesRunningSession(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	_, err := c.Apply(context.Background(), domain.EventStart, domain.WarningNone)
	require.NoError(t, err)

	completed := make(chan service.Snapshot, 16)
	ticker := service.NewTicker(c,
		service.WithInterval(5*time.Millisecond),
		service.WithObserver(func(s service.Snapshot) {
			if len(s.Completed) > 0 {
				completed <- s
			}
		}),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ticker.Run(ctx) }()

	h.clock.Advance(25 * time.Minute)
	select {
	case snap := <-completed:
		assert.Equal(t, domain.PhaseShortBreak, snap.State.Phase)
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not complete the work phase")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestTickerResolvesElapsedTimeOnStart(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	_, err := c.Apply(context.Background(), domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.clock.Advance(26 * time.Minute)

	first := make(chan service.Snapshot, 1)
	ticker := service.NewTicker(c, service.WithInterval(time.Hour), service.WithObserver(func(s service.Snapshot) {
		select {
		case first <- s:
		default:
		}
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ticker.Run(ctx) }()

	snap := <-first
	assert.Equal(t, []domain.Phase{domain.PhaseWork}, snap.Completed)
	cancel()
	require.NoError(t, <-done)
}

func TestTickerSkipsIdleSession(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ticks := make(chan struct{}, 64)
	ticker := service.NewTicker(c, service.WithInterval(2*time.Millisecond), service.WithObserver(func(service.Snapshot) {
		ticks <- struct{}{}
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, ticker.Run(ctx))

	assert.Len(t, ticks, 1, "only the initial resume is observed while idle")
	assert.Equal(t, 1, h.store.Saves())
}
