package domain

// MaxCatchUpSteps bounds how many elapsed phases one TICK or APP_RESUME can
// resolve. A longer gap leaves the session running with a planned end in the
// past and the next tick continues from there.
const MaxCatchUpSteps = 24

type advance struct {
	phase         Phase
	completedWork int
}

// nextPhase picks what follows a naturally completed phase.
func nextPhase(finished Phase, completedWork int, cfg TransitionConfig) advance {
	if finished != PhaseWork {
		return advance{phase: PhaseWork, completedWork: completedWork}
	}
	completed := completedWork + 1
	if completed >= cfg.Preset.LongBreakInterval {
		return advance{phase: PhaseLongBreak, completedWork: 0}
	}
	return advance{phase: PhaseShortBreak, completedWork: completed}
}

func catchUp(state SessionClock, now int64, cfg TransitionConfig) Result {
	var effects []Effect
	for steps := 0; steps < MaxCatchUpSteps; steps++ {
		if state.Status != StatusRunning || state.PlannedEndTimestamp == nil || *state.PlannedEndTimestamp > now {
			break
		}
		finished := state.Phase
		boundary := *state.PlannedEndTimestamp
		next := nextPhase(finished, state.CompletedWorkInCycle, cfg)
		effects = append(effects, CancelNotification(), SessionCompleted(finished))

		if !cfg.autoStart(next.phase) {
			state = idleAt(state, next.phase, cfg)
			state.CompletedWorkInCycle = next.completedWork
			state.LastCompletedPhase = ptr(finished)
			state.Warning = WarningNone
			break
		}

		state = runningAt(state, next.phase, boundary, cfg)
		state.CompletedWorkInCycle = next.completedWork
		state.LastCompletedPhase = ptr(finished)
		state.Warning = WarningNone
		effects = append(effects, ScheduleNotification(state.Phase, *state.PlannedEndTimestamp))
	}
	if state.Status == StatusRunning && state.PlannedEndTimestamp != nil {
		state.RemainingMs = max(0, *state.PlannedEndTimestamp-now)
	}
	return Result{State: state, Effects: effects}
}
