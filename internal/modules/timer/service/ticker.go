package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"pomo/internal/modules/timer/domain"
)

// TickerOption configures the ticker.
type TickerOption func(*Ticker)

func WithInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

func WithTickerLogger(log hclog.Logger) TickerOption {
	return func(t *Ticker) { t.log = log }
}

// WithObserver registers a callback invoked with the snapshot after every tick.
func WithObserver(fn func(Snapshot)) TickerOption {
	return func(t *Ticker) { t.observe = fn }
}

// Ticker drives TICK events through the controller while a session runs.
type Ticker struct {
	controller *Controller
	interval   time.Duration
	log        hclog.Logger
	observe    func(Snapshot)
}

func NewTicker(controller *Controller, opts ...TickerOption) *Ticker {
	t := &Ticker{
		controller: controller,
		interval:   time.Second,
		log:        hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run resolves time that passed while nothing was ticking, then ticks until
// ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	snapshot, err := t.controller.Apply(ctx, domain.EventAppResume, domain.WarningNone)
	if err != nil {
		return err
	}
	t.notify(snapshot)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	t.log.Debug("ticker started", "interval", t.interval)

	for {
		select {
		case <-ctx.Done():
			t.log.Debug("ticker stopped")
			return nil
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *Ticker) tick(ctx context.Context) {
	snapshot, err := t.controller.Snapshot(ctx)
	if err != nil {
		t.log.Error("read timer state", "error", err)
		return
	}
	if snapshot.State.Status != domain.StatusRunning {
		return
	}
	snapshot, err = t.controller.Apply(ctx, domain.EventTick, domain.WarningNone)
	if err != nil {
		t.log.Error("tick", "error", err)
		return
	}
	t.notify(snapshot)
}

func (t *Ticker) notify(snapshot Snapshot) {
	if len(snapshot.Completed) > 0 {
		t.log.Info("phase advanced", "phase", snapshot.State.Phase, "status", snapshot.State.Status)
	}
	if t.observe != nil {
		t.observe(snapshot)
	}
}
