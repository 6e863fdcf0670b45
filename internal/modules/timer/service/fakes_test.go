package service_test

import (
	"context"
	"sync"
	"time"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu    sync.Mutex
	state domain.SessionClock
	ok    bool
	saves int
}

func (s *memStore) Load(context.Context) (domain.SessionClock, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.ok, nil
}

func (s *memStore) Save(_ context.Context, state domain.SessionClock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.ok = true
	s.saves++
	return nil
}

func (s *memStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fakeSource struct {
	mu   sync.Mutex
	opts timerout.Options
}

func newFakeSource() *fakeSource {
	return &fakeSource{opts: timerout.Options{Config: domain.DefaultTransitionConfig(), Sound: "chime", PersistHistory: true}}
}

func (f *fakeSource) Options(context.Context) (timerout.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opts, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	scheduled []int64
	cancels   int
	pending   *domain.ScheduledNotification
}

func (f *fakeNotifier) Schedule(_ context.Context, phase domain.Phase, plannedEnd int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, plannedEnd)
	f.pending = &domain.ScheduledNotification{ID: domain.NotificationID, Phase: phase, FireAt: plannedEnd}
	return nil
}

func (f *fakeNotifier) Cancel(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	f.pending = nil
	return nil
}

func (f *fakeNotifier) Pending(context.Context) (domain.ScheduledNotification, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return domain.ScheduledNotification{}, false, nil
	}
	return *f.pending, true, nil
}

type fakeRecorder struct {
	mu    sync.Mutex
	dates []string
}

func (f *fakeRecorder) RecordCompletion(_ context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
	return nil
}

type fakeCue struct {
	mu    sync.Mutex
	plays []string
}

func (f *fakeCue) Play(_ context.Context, sound string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays = append(f.plays, sound)
	return nil
}

type fakeHooks struct {
	mu    sync.Mutex
	kinds []domain.EffectKind
}

func (f *fakeHooks) Dispatch(_ context.Context, effect domain.Effect, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, effect.Kind)
}

type harness struct {
	clock    *stepClock
	store    *memStore
	source   *fakeSource
	notifier *fakeNotifier
	recorder *fakeRecorder
	cue      *fakeCue
	hooks    *fakeHooks
}

func newHarness() *harness {
	return &harness{
		clock:    newStepClock(),
		store:    &memStore{},
		source:   newFakeSource(),
		notifier: &fakeNotifier{},
		recorder: &fakeRecorder{},
		cue:      &fakeCue{},
		hooks:    &fakeHooks{},
	}
}
