package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidClock = errors.New("invalid session clock")

// SessionClock is the full timer state. Timestamps are epoch milliseconds and
// the JSON shape is the persisted-state contract.
type SessionClock struct {
	Phase                      Phase   `json:"phase"`
	Status                     Status  `json:"status"`
	SessionStartTimestamp      *int64  `json:"session_start_timestamp"`
	PlannedEndTimestamp        *int64  `json:"planned_end_timestamp"`
	PausedRemainingMs          *int64  `json:"paused_remaining_ms"`
	RemainingMs                int64   `json:"remaining_ms"`
	PauseCountInCurrentSession int     `json:"pause_count_in_current_session"`
	CompletedWorkInCycle       int     `json:"completed_work_in_cycle"`
	LastCompletedPhase         *Phase  `json:"last_completed_phase"`
	Warning                    Warning `json:"warning"`
}

// DefaultSessionClock is an idle work phase at the full work duration.
func DefaultSessionClock(cfg TransitionConfig) SessionClock {
	return SessionClock{
		Phase:       PhaseWork,
		Status:      StatusIdle,
		RemainingMs: cfg.Duration(PhaseWork),
	}
}

// RemainingTime derives the remaining milliseconds at now without mutating state.
func RemainingTime(state SessionClock, now int64) int64 {
	switch state.Status {
	case StatusRunning:
		if state.PlannedEndTimestamp == nil {
			return max(0, state.RemainingMs)
		}
		return max(0, *state.PlannedEndTimestamp-now)
	case StatusPaused:
		if state.PausedRemainingMs == nil {
			return max(0, state.RemainingMs)
		}
		return max(0, *state.PausedRemainingMs)
	default:
		return max(0, state.RemainingMs)
	}
}

// CycleProgressLabel renders the 1-based upcoming work session within the
// long-break cycle, e.g. "2/4".
func CycleProgressLabel(state SessionClock, interval int) string {
	if interval <= 0 {
		return "0/0"
	}
	upcoming := state.CompletedWorkInCycle
	if state.Phase == PhaseWork {
		upcoming++
	}
	upcoming = min(max(upcoming, 0), interval)
	return fmt.Sprintf("%d/%d", upcoming, interval)
}

// Validate checks the structural invariants. Loaded state that fails is discarded.
func (s SessionClock) Validate() error {
	if !s.Phase.Valid() {
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidClock, s.Phase)
	}
	if !s.Warning.Valid() {
		return fmt.Errorf("%w: unknown warning %q", ErrInvalidClock, s.Warning)
	}
	switch s.Status {
	case StatusRunning:
		if s.PlannedEndTimestamp == nil || s.PausedRemainingMs != nil {
			return fmt.Errorf("%w: running requires planned end only", ErrInvalidClock)
		}
	case StatusPaused:
		if s.PausedRemainingMs == nil || s.PlannedEndTimestamp != nil {
			return fmt.Errorf("%w: paused requires paused remaining only", ErrInvalidClock)
		}
		if *s.PausedRemainingMs < 0 {
			return fmt.Errorf("%w: negative paused remaining", ErrInvalidClock)
		}
	case StatusIdle:
		if s.PlannedEndTimestamp != nil || s.PausedRemainingMs != nil {
			return fmt.Errorf("%w: idle must not carry a countdown", ErrInvalidClock)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidClock, s.Status)
	}
	if s.RemainingMs < 0 {
		return fmt.Errorf("%w: negative remaining", ErrInvalidClock)
	}
	if s.PauseCountInCurrentSession < 0 || s.CompletedWorkInCycle < 0 {
		return fmt.Errorf("%w: negative counter", ErrInvalidClock)
	}
	if s.LastCompletedPhase != nil && !s.LastCompletedPhase.Valid() {
		return fmt.Errorf("%w: unknown last completed phase %q", ErrInvalidClock, *s.LastCompletedPhase)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
