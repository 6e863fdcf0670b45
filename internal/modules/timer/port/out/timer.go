package out

import (
	"context"

	"pomo/internal/modules/timer/domain"
)

// Options is the settings snapshot a transition runs against.
type Options struct {
	Config         domain.TransitionConfig
	Sound          string
	PersistHistory bool
}

type ConfigSource interface {
	Options(ctx context.Context) (Options, error)
}

type StateStore interface {
	Load(ctx context.Context) (domain.SessionClock, bool, error)
	Save(ctx context.Context, state domain.SessionClock) error
}

type Notifier interface {
	Schedule(ctx context.Context, phase domain.Phase, plannedEnd int64) error
	Cancel(ctx context.Context) error
	Pending(ctx context.Context) (domain.ScheduledNotification, bool, error)
}

type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, date string) error
}

type Cue interface {
	Play(ctx context.Context, sound string) error
}

type HookDispatcher interface {
	Dispatch(ctx context.Context, effect domain.Effect, at int64)
}
