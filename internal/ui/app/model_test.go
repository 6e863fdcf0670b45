package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingsdto "pomo/internal/modules/settings/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/components"
)

type fakeTimer struct {
	calls  []string
	state  timerdto.StateOutput
	reason string
	err    error
}

func (f *fakeTimer) record(name string) (timerdto.StateOutput, error) {
	f.calls = append(f.calls, name)
	return f.state, f.err
}

func (f *fakeTimer) Start(context.Context) (timerdto.StateOutput, error)  { return f.record("start") }
func (f *fakeTimer) Pause(context.Context) (timerdto.StateOutput, error)  { return f.record("pause") }
func (f *fakeTimer) Status(context.Context) (timerdto.StateOutput, error) { return f.record("status") }
func (f *fakeTimer) Tick(context.Context) (timerdto.StateOutput, error)   { return f.record("tick") }
func (f *fakeTimer) Reset(_ context.Context, reason string) (timerdto.StateOutput, error) {
	f.reason = reason
	return f.record("reset")
}
func (f *fakeTimer) Interrupt(_ context.Context, kind string) (timerdto.StateOutput, error) {
	f.reason = kind
	return f.record("interrupt")
}
func (f *fakeTimer) DismissBanner(context.Context) error {
	f.calls = append(f.calls, "dismiss")
	return nil
}

type fakeSettings struct {
	selected string
	key      string
	value    string
}

func (f *fakeSettings) SelectPreset(_ context.Context, id string) (settingsdto.PresetOutput, error) {
	f.selected = id
	return settingsdto.PresetOutput{ID: id, Name: "Deep 50/10"}, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) (settingsdto.SettingsOutput, error) {
	f.key, f.value = key, value
	return settingsdto.SettingsOutput{}, nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msg to the model and then runs the returned command once,
// feeding its message back in.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestFormatRemainingRoundsUp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "25:00", FormatRemaining(25*60*1000))
	assert.Equal(t, "00:01", FormatRemaining(1))
	assert.Equal(t, "00:00", FormatRemaining(0))
	assert.Equal(t, "00:00", FormatRemaining(-500))
	assert.Equal(t, "05:00", FormatRemaining(4*60*1000+59_001))
}

func TestStartKeyCallsTimer(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{state: timerdto.StateOutput{Phase: "work", Status: "running", RemainingMs: 1500_000, CycleLabel: "Cycle 1/4", PausesLeft: 1, PresetName: "Classic 25/5"}}
	m := NewModel(timer, &fakeSettings{}, 0)

	m = drive(t, m, keyPress("s"))
	assert.Equal(t, []string{"start"}, timer.calls)
	assert.Equal(t, "started", m.status)

	view := m.View()
	assert.Contains(t, view, "Focus")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Cycle 1/4")
	assert.Contains(t, view, "pauses left: 1")
}

func TestPauseBlockedWhenAllowanceSpent(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{}
	m := NewModel(timer, &fakeSettings{}, 0)
	m.state = timerdto.StateOutput{Phase: "work", Status: "running", PausesLeft: 0}
	m.loaded = true

	m = drive(t, m, keyPress("p"))
	assert.Empty(t, timer.calls)
	assert.Contains(t, m.status, "no pauses left")
}

func TestTickReportsCompletion(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{state: timerdto.StateOutput{Phase: "short_break", Status: "running", Completed: []string{"work"}}}
	m := NewModel(timer, &fakeSettings{}, 0)

	next, cmd := m.Update(tickMsg{})
	require.NotNil(t, cmd)
	m = next.(Model)
	// The batch carries the tick call and the next timer; run the tick call.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	next, _ = m.Update(batch[0]())
	m = next.(Model)

	assert.Equal(t, []string{"tick"}, timer.calls)
	assert.Equal(t, "focus complete, now short break", m.status)
	assert.Contains(t, m.View(), "Short break")
}

func TestBannerShownAndDismissed(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{state: timerdto.StateOutput{Phase: "work", Status: "idle"}}
	m := NewModel(timer, &fakeSettings{}, 0)
	m.state = timerdto.StateOutput{Phase: "work", Status: "idle", Banner: "call_interrupted"}
	m.loaded = true
	assert.Contains(t, m.View(), "a call interrupted the timer")

	m = drive(t, m, keyPress("d"))
	assert.Contains(t, timer.calls, "dismiss")
	assert.NotContains(t, m.View(), "a call interrupted the timer")
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{state: timerdto.StateOutput{Phase: "work", Status: "idle"}}
	settings := &fakeSettings{}
	m := NewModel(timer, settings, 0)

	m = drive(t, m, components.PaletteSubmitMsg{Input: "preset deep"})
	assert.Equal(t, "deep", settings.selected)
	assert.Equal(t, "preset: Deep 50/10", m.status)

	m = drive(t, m, components.PaletteSubmitMsg{Input: "set focus-mode loose"})
	assert.Equal(t, "focus-mode", settings.key)
	assert.Equal(t, "loose", settings.value)

	m = drive(t, m, components.PaletteSubmitMsg{Input: "interrupt call"})
	assert.Equal(t, "call", timer.reason)

	m = drive(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	assert.Contains(t, m.status, "unknown command")
}

func TestTimerErrorSurfacesInStatus(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{err: errors.New("disk full")}
	m := NewModel(timer, &fakeSettings{}, 0)

	m = drive(t, m, keyPress("r"))
	assert.Equal(t, "reset failed: disk full", m.status)
	assert.Contains(t, m.View(), "loading")
}
