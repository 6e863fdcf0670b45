package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/timer/domain"
)

func TestRemainingTime(t *testing.T) {
	t.Parallel()
	cfg := classicConfig()
	idle := domain.DefaultSessionClock(cfg)
	active := running(t, cfg, 0)
	paused := domain.Transition(active, domain.Pause(4*minute), cfg).State

	assert.Equal(t, 25*minute, domain.RemainingTime(idle, 999*minute))
	assert.Equal(t, 15*minute, domain.RemainingTime(active, 10*minute))
	assert.Zero(t, domain.RemainingTime(active, 40*minute))
	assert.Equal(t, 21*minute, domain.RemainingTime(paused, 90*minute))
}

func TestRemainingTimeDoesNotMutate(t *testing.T) {
	t.Parallel()
	state := running(t, classicConfig(), 0)
	before := state
	_ = domain.RemainingTime(state, 3*minute)
	assert.Equal(t, before, state)
}

func TestCycleProgressLabel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		phase     domain.Phase
		completed int
		interval  int
		want      string
	}{
		{name: "first work", phase: domain.PhaseWork, completed: 0, interval: 4, want: "1/4"},
		{name: "break after first", phase: domain.PhaseShortBreak, completed: 1, interval: 4, want: "1/4"},
		{name: "last work", phase: domain.PhaseWork, completed: 3, interval: 4, want: "4/4"},
		{name: "long break", phase: domain.PhaseLongBreak, completed: 0, interval: 4, want: "0/4"},
		{name: "clamped", phase: domain.PhaseWork, completed: 9, interval: 4, want: "4/4"},
		{name: "no interval", phase: domain.PhaseWork, completed: 2, interval: 0, want: "0/0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := domain.SessionClock{Phase: tc.phase, Status: domain.StatusIdle, CompletedWorkInCycle: tc.completed}
			assert.Equal(t, tc.want, domain.CycleProgressLabel(state, tc.interval))
		})
	}
}

func TestSessionClockJSONShape(t *testing.T) {
	t.Parallel()
	cfg := classicConfig()
	state := running(t, cfg, 1_700_000_000_000)

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	fields := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "work", fields["phase"])
	assert.Equal(t, "running", fields["status"])
	assert.Nil(t, fields["paused_remaining_ms"])
	assert.Nil(t, fields["warning"])
	assert.Nil(t, fields["last_completed_phase"])
	assert.Contains(t, fields, "pause_count_in_current_session")

	var decoded domain.SessionClock
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, state, decoded)
}

func TestSessionClockJSONRoundTripWithWarning(t *testing.T) {
	t.Parallel()
	cfg := classicConfig()
	state := running(t, cfg, 0)
	state = domain.Transition(state, domain.Tick(25*minute), cfg).State
	state = domain.Transition(state, domain.CallInterruption(26*minute), cfg).State

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"warning":"call_interrupted"`)
	assert.Contains(t, string(raw), `"last_completed_phase":"work"`)

	var decoded domain.SessionClock
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, state, decoded)
}

func TestValidateRejectsBrokenInvariants(t *testing.T) {
	t.Parallel()
	end := int64(10)
	rest := int64(5)
	negative := int64(-1)
	cases := map[string]domain.SessionClock{
		"running without end":  {Phase: domain.PhaseWork, Status: domain.StatusRunning},
		"paused with end":      {Phase: domain.PhaseWork, Status: domain.StatusPaused, PausedRemainingMs: &rest, PlannedEndTimestamp: &end},
		"idle with countdown":  {Phase: domain.PhaseWork, Status: domain.StatusIdle, PausedRemainingMs: &rest},
		"negative remaining":   {Phase: domain.PhaseWork, Status: domain.StatusIdle, RemainingMs: -5},
		"negative paused":      {Phase: domain.PhaseWork, Status: domain.StatusPaused, PausedRemainingMs: &negative},
		"unknown phase":        {Phase: "nap", Status: domain.StatusIdle},
		"unknown status":       {Phase: domain.PhaseWork, Status: "stopped"},
		"unknown warning":      {Phase: domain.PhaseWork, Status: domain.StatusIdle, Warning: "battery"},
		"negative pause count": {Phase: domain.PhaseWork, Status: domain.StatusIdle, PauseCountInCurrentSession: -1},
	}
	for name, state := range cases {
		assert.ErrorIs(t, state.Validate(), domain.ErrInvalidClock, name)
	}
	assert.NoError(t, domain.DefaultSessionClock(classicConfig()).Validate())
}
