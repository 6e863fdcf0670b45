package service

import (
	"context"
	"errors"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
)

// Snapshot is the controller state after an operation.
type Snapshot struct {
	State     domain.SessionClock
	Options   timerout.Options
	Now       int64
	Banner    domain.Warning
	Completed []domain.Phase
}

// Option configures the controller.
type Option func(*Controller)

func WithCue(cue timerout.Cue) Option {
	return func(c *Controller) { c.cue = cue }
}

func WithHooks(hooks timerout.HookDispatcher) Option {
	return func(c *Controller) { c.hooks = hooks }
}

func WithLogger(log hclog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithLocation sets the zone used to bucket completions into days.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.location = loc }
}

// Controller is the single writer of the session clock. Every event, whether
// from a user command or the ticker, is applied under its lock.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	store    timerout.StateStore
	source   timerout.ConfigSource
	notifier timerout.Notifier
	recorder timerout.CompletionRecorder
	cue      timerout.Cue
	hooks    timerout.HookDispatcher
	log      hclog.Logger
	location *time.Location

	state  domain.SessionClock
	banner domain.Warning
}

func NewController(clk clock.Clock, store timerout.StateStore, source timerout.ConfigSource, notifier timerout.Notifier, recorder timerout.CompletionRecorder, opts ...Option) *Controller {
	c := &Controller{
		clock:    clk,
		store:    store,
		source:   source,
		notifier: notifier,
		recorder: recorder,
		log:      hclog.NewNullLogger(),
		location: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply runs one event through the engine, persists the result and
// dispatches the effects in order. Hooks and the completion cue run after the
// lock is released so slow plugins never hold up other events.
func (c *Controller) Apply(ctx context.Context, kind domain.EventKind, reason domain.Warning) (Snapshot, error) {
	snap, effects, err := c.applyLocked(ctx, kind, reason)
	if err != nil {
		return Snapshot{}, err
	}
	c.notifyOutside(ctx, snap, effects)
	return snap, nil
}

func (c *Controller) applyLocked(ctx context.Context, kind domain.EventKind, reason domain.Warning) (Snapshot, []domain.Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts, err := c.source.Options(ctx)
	if err != nil {
		return Snapshot{}, nil, err
	}
	if err := c.loadLocked(ctx, opts.Config); err != nil {
		return Snapshot{}, nil, err
	}

	now := clock.NowMillis(c.clock)
	result := domain.Transition(c.state, domain.Event{Kind: kind, Now: now, Reason: reason}, opts.Config)
	c.state = result.State
	if kind != domain.EventTick && kind != domain.EventAppResume {
		c.banner = domain.WarningNone
	}

	// An uneventful tick only refreshes the derived remaining time.
	if kind != domain.EventTick || len(result.Effects) > 0 {
		if err := c.store.Save(ctx, c.state); err != nil {
			return Snapshot{}, nil, err
		}
	}
	if len(result.Effects) > 0 {
		c.log.Debug("transition", "event", kind, "phase", c.state.Phase, "status", c.state.Status, "effects", len(result.Effects))
	}
	completed := c.dispatchLocked(ctx, opts, now, result.Effects)

	return Snapshot{State: c.state, Options: opts, Now: now, Banner: c.banner, Completed: completed}, result.Effects, nil
}

// Snapshot returns the current state without applying an event.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts, err := c.source.Options(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if err := c.loadLocked(ctx, opts.Config); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{State: c.state, Options: opts, Now: clock.NowMillis(c.clock), Banner: c.banner}, nil
}

// SyncIdle refreshes an idle clock to the full duration of the current preset.
func (c *Controller) SyncIdle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts, err := c.source.Options(ctx)
	if err != nil {
		return err
	}
	if err := c.loadLocked(ctx, opts.Config); err != nil {
		return err
	}
	if c.state.Status != domain.StatusIdle {
		return nil
	}
	c.state.RemainingMs = opts.Config.Duration(c.state.Phase)
	return c.store.Save(ctx, c.state)
}

func (c *Controller) DismissBanner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner = domain.WarningNone
}

// Pending returns the currently scheduled session-end notification, if any.
func (c *Controller) Pending(ctx context.Context) (domain.ScheduledNotification, bool, error) {
	return c.notifier.Pending(ctx)
}

// loadLocked rereads the persisted clock so that other processes sharing
// the state file are observed. Unreadable state falls back to the default.
func (c *Controller) loadLocked(ctx context.Context, cfg domain.TransitionConfig) error {
	state, ok, err := c.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrInvalidClock):
		c.log.Warn("discarding persisted timer state", "error", err)
		state = domain.DefaultSessionClock(cfg)
	case err != nil:
		return err
	case !ok:
		state = domain.DefaultSessionClock(cfg)
	}
	if err := state.Validate(); err != nil {
		c.log.Warn("discarding persisted timer state", "error", err)
		state = domain.DefaultSessionClock(cfg)
	}
	c.state = state
	return nil
}

// dispatchLocked hands each effect to the notifier and the history recorder.
// Failures are logged; the transition itself has already been committed.
func (c *Controller) dispatchLocked(ctx context.Context, opts timerout.Options, now int64, effects []domain.Effect) []domain.Phase {
	var completed []domain.Phase
	for _, effect := range effects {
		switch effect.Kind {
		case domain.EffectScheduleNotification:
			if err := c.notifier.Schedule(ctx, effect.Phase, effect.PlannedEndTimestamp); err != nil {
				c.log.Error("schedule notification", "phase", effect.Phase, "error", err)
			}
		case domain.EffectCancelNotification:
			if err := c.notifier.Cancel(ctx); err != nil {
				c.log.Error("cancel notification", "error", err)
			}
		case domain.EffectSessionCompleted:
			completed = append(completed, effect.Phase)
			c.log.Info("session completed", "phase", effect.Phase)
			if effect.CompletedWork && opts.PersistHistory && c.recorder != nil {
				if err := c.recorder.RecordCompletion(ctx, c.localDate(now)); err != nil {
					c.log.Error("record completion", "error", err)
				}
			}
		case domain.EffectBanner:
			c.banner = effect.Reason
			c.log.Warn("session reset", "reason", effect.Reason)
		}
	}
	return completed
}

// notifyOutside forwards effects to hooks and plays one cue per catch-up,
// however many phases it resolved. It runs without the controller lock.
func (c *Controller) notifyOutside(ctx context.Context, snap Snapshot, effects []domain.Effect) {
	if c.hooks != nil {
		for _, effect := range effects {
			c.hooks.Dispatch(ctx, effect, snap.Now)
		}
	}
	if len(snap.Completed) > 0 && c.cue != nil {
		if err := c.cue.Play(ctx, snap.Options.Sound); err != nil {
			c.log.Warn("play completion cue", "sound", snap.Options.Sound, "error", err)
		}
	}
}

func (c *Controller) localDate(now int64) string {
	return time.UnixMilli(now).In(c.location).Format("2006-01-02")
}
