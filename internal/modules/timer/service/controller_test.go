package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/service"
)

func (h *harness) controller() *service.Controller {
	return service.NewController(h.clock, h.store, h.source, h.notifier, h.recorder,
		service.WithCue(h.cue),
		service.WithHooks(h.hooks),
		service.WithLocation(time.UTC),
	)
}

func TestApplyStartPersistsAndSchedules(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()

	snap, err := c.Apply(context.Background(), domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, snap.State.Status)
	assert.Equal(t, 1, h.store.Saves())
	assert.Equal(t, domain.StatusRunning, h.store.state.Status)
	require.Len(t, h.notifier.scheduled, 1)
	assert.Equal(t, h.clock.Now().Add(25*time.Minute).UnixMilli(), h.notifier.scheduled[0])
	assert.Equal(t, []domain.EffectKind{domain.EffectScheduleNotification}, h.hooks.kinds)

	pending, ok, err := c.Pending(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationID, pending.ID)
}

func TestWorkCompletionRecordsHistoryAndPlaysCue(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ctx := context.Background()

	_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.clock.Advance(25 * time.Minute)

	snap, err := c.Apply(ctx, domain.EventTick, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, []domain.Phase{domain.PhaseWork}, snap.Completed)
	assert.Equal(t, domain.PhaseShortBreak, snap.State.Phase)
	assert.Equal(t, []string{"2026-03-02"}, h.recorder.dates)
	assert.Equal(t, []string{"chime"}, h.cue.plays)
	assert.Equal(t, 1, h.notifier.cancels)
	assert.Len(t, h.notifier.scheduled, 2)
}

func TestCatchUpRecordsEachWorkCompletionButChimesOnce(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ctx := context.Background()

	_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.clock.Advance(56 * time.Minute)

	snap, err := c.Apply(ctx, domain.EventAppResume, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, []domain.Phase{domain.PhaseWork, domain.PhaseShortBreak, domain.PhaseWork}, snap.Completed)
	assert.Len(t, h.recorder.dates, 2)
	assert.Len(t, h.cue.plays, 1)
}

func TestCompletionNotRecordedWhenPersistenceDisabled(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.source.opts.PersistHistory = false
	c := h.controller()
	ctx := context.Background()

	_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.clock.Advance(26 * time.Minute)
	_, err = c.Apply(ctx, domain.EventTick, domain.WarningNone)
	require.NoError(t, err)
	assert.Empty(t, h.recorder.dates)
	assert.Len(t, h.cue.plays, 1)
}

func TestBannerSurvivesTicksUntilNextAction(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ctx := context.Background()

	_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	snap, err := c.Apply(ctx, domain.EventCallInterruption, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, domain.WarningCallInterrupted, snap.Banner)
	assert.Equal(t, domain.WarningCallInterrupted, snap.State.Warning)

	snap, err = c.Apply(ctx, domain.EventTick, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, domain.WarningCallInterrupted, snap.Banner)

	c.DismissBanner()
	snap, err = c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.WarningNone, snap.Banner)
	assert.Equal(t, domain.WarningCallInterrupted, snap.State.Warning)

	snap, err = c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, domain.WarningNone, snap.State.Warning)
}

func TestUneventfulTickDoesNotPersist(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ctx := context.Background()

	_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.clock.Advance(time.Minute)
	snap, err := c.Apply(ctx, domain.EventTick, domain.WarningNone)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Minute.Milliseconds(), snap.State.RemainingMs)
	assert.Equal(t, 1, h.store.Saves())
}

func TestInvalidPersistedStateFallsBackToDefault(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.store.state = domain.SessionClock{Phase: domain.PhaseWork, Status: domain.StatusRunning}
	h.store.ok = true
	c := h.controller()

	snap, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSessionClock(domain.DefaultTransitionConfig()), snap.State)
}

func TestPersistedStateIsResumed(t *testing.T) {
	t.Parallel()
	h := newHarness()
	first := h.controller()
	_, err := first.Apply(context.Background(), domain.EventStart, domain.WarningNone)
	require.NoError(t, err)

	second := h.controller()
	snap, err := second.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, snap.State.Status)
}

func TestSyncIdleFollowsPresetButLeavesRunningAlone(t *testing.T) {
	t.Parallel()
	h := newHarness()
	c := h.controller()
	ctx := context.Background()

	h.source.mu.Lock()
	h.source.opts.Config.Preset.WorkMinutes = 50
	h.source.mu.Unlock()
	require.NoError(t, c.SyncIdle(ctx))
	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute.Milliseconds(), snap.State.RemainingMs)

	_, err = c.Apply(ctx, domain.EventStart, domain.WarningNone)
	require.NoError(t, err)
	h.source.mu.Lock()
	h.source.opts.Config.Preset.WorkMinutes = 10
	h.source.mu.Unlock()
	require.NoError(t, c.SyncIdle(ctx))
	snap, err = c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute.Milliseconds(), snap.State.RemainingMs)
}

func TestConcurrentEventsKeepStateValid(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.source.opts.Config.FocusMode = domain.FocusLoose
	c := h.controller()
	ctx := context.Background()
	kinds := []domain.EventKind{domain.EventStart, domain.EventPause, domain.EventResume, domain.EventTick, domain.EventReset}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.clock.Advance(time.Second)
				_, err := c.Apply(ctx, kinds[(offset+j)%len(kinds)], domain.WarningNone)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, snap.State.Validate())
}

type blockingHooks struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingHooks) Dispatch(context.Context, domain.Effect, int64) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
}

func TestSlowHookDoesNotHoldControllerLock(t *testing.T) {
	t.Parallel()
	h := newHarness()
	hooks := &blockingHooks{entered: make(chan struct{}), release: make(chan struct{})}
	c := service.NewController(h.clock, h.store, h.source, h.notifier, h.recorder,
		service.WithHooks(hooks),
		service.WithLocation(time.UTC),
	)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.Apply(ctx, domain.EventStart, domain.WarningNone)
		done <- err
	}()
	<-hooks.entered

	snapshotted := make(chan domain.Status, 1)
	go func() {
		snap, err := c.Snapshot(ctx)
		if err == nil {
			snapshotted <- snap.State.Status
		}
	}()
	select {
	case status := <-snapshotted:
		assert.Equal(t, domain.StatusRunning, status)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot blocked behind a hook call")
	}

	close(hooks.release)
	require.NoError(t, <-done)
}
