package domain

// Result is the next state plus the effects the caller must perform, in order.
type Result struct {
	State   SessionClock
	Effects []Effect
}

// Transition computes the next state for an event. It never fails: events
// that are illegal in the current state return the state unchanged and no effects.
func Transition(state SessionClock, event Event, cfg TransitionConfig) Result {
	switch event.Kind {
	case EventStart:
		return start(state, event.Now, cfg)
	case EventPause:
		return pause(state, event.Now, cfg)
	case EventResume:
		return resume(state, event.Now)
	case EventReset:
		return reset(state, event.Reason, cfg)
	case EventCallInterruption:
		return interrupt(state, WarningCallInterrupted, cfg)
	case EventTimeChange:
		return interrupt(state, WarningTimeChanged, cfg)
	case EventTick, EventAppResume:
		return catchUp(state, event.Now, cfg)
	default:
		return unchanged(state)
	}
}

func unchanged(state SessionClock) Result {
	return Result{State: state}
}

func start(state SessionClock, now int64, cfg TransitionConfig) Result {
	if state.Status != StatusIdle {
		return unchanged(state)
	}
	next := runningAt(state, state.Phase, now, cfg)
	next.Warning = WarningNone
	return Result{
		State:   next,
		Effects: []Effect{ScheduleNotification(next.Phase, *next.PlannedEndTimestamp)},
	}
}

func pause(state SessionClock, now int64, cfg TransitionConfig) Result {
	if state.Status != StatusRunning || state.PlannedEndTimestamp == nil {
		return unchanged(state)
	}
	if cfg.PauseBlocked(state.Phase, state.PauseCountInCurrentSession) {
		return unchanged(state)
	}
	remaining := max(0, *state.PlannedEndTimestamp-now)
	next := state
	next.Status = StatusPaused
	next.PlannedEndTimestamp = nil
	next.PausedRemainingMs = ptr(remaining)
	next.RemainingMs = remaining
	next.PauseCountInCurrentSession = state.PauseCountInCurrentSession + 1
	return Result{State: next, Effects: []Effect{CancelNotification()}}
}

func resume(state SessionClock, now int64) Result {
	if state.Status != StatusPaused || state.PausedRemainingMs == nil {
		return unchanged(state)
	}
	remaining := *state.PausedRemainingMs
	next := state
	next.Status = StatusRunning
	next.SessionStartTimestamp = ptr(now)
	next.PlannedEndTimestamp = ptr(now + remaining)
	next.PausedRemainingMs = nil
	next.RemainingMs = remaining
	return Result{
		State:   next,
		Effects: []Effect{ScheduleNotification(next.Phase, *next.PlannedEndTimestamp)},
	}
}

func reset(state SessionClock, reason Warning, cfg TransitionConfig) Result {
	next := idleAt(state, state.Phase, cfg)
	if reason == WarningNone || !reason.Valid() {
		return Result{State: next, Effects: []Effect{CancelNotification()}}
	}
	next.Warning = reason
	return Result{State: next, Effects: []Effect{Banner(reason), CancelNotification()}}
}

func interrupt(state SessionClock, reason Warning, cfg TransitionConfig) Result {
	next := idleAt(state, state.Phase, cfg)
	next.Warning = reason
	return Result{State: next, Effects: []Effect{CancelNotification(), Banner(reason)}}
}

// runningAt begins phase at start with a fresh pause budget.
func runningAt(state SessionClock, phase Phase, start int64, cfg TransitionConfig) SessionClock {
	duration := cfg.Duration(phase)
	next := state
	next.Phase = phase
	next.Status = StatusRunning
	next.SessionStartTimestamp = ptr(start)
	next.PlannedEndTimestamp = ptr(start + duration)
	next.PausedRemainingMs = nil
	next.RemainingMs = duration
	next.PauseCountInCurrentSession = 0
	return next
}

// idleAt parks the clock on phase at its full duration. The warning is kept.
func idleAt(state SessionClock, phase Phase, cfg TransitionConfig) SessionClock {
	next := state
	next.Phase = phase
	next.Status = StatusIdle
	next.SessionStartTimestamp = nil
	next.PlannedEndTimestamp = nil
	next.PausedRemainingMs = nil
	next.RemainingMs = cfg.Duration(phase)
	next.PauseCountInCurrentSession = 0
	return next
}
