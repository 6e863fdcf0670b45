package domain

const msPerMinute int64 = 60_000

type Preset struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	WorkMinutes       int    `json:"work_minutes"`
	ShortBreakMinutes int    `json:"short_break_minutes"`
	LongBreakMinutes  int    `json:"long_break_minutes"`
	LongBreakInterval int    `json:"long_break_interval"`
}

// DefaultPreset is the classic 25/5 cycle with a long break every fourth session.
func DefaultPreset() Preset {
	return Preset{
		ID:                "default",
		Name:              "Classic 25/5",
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
	}
}

// TransitionConfig is the read-only input the engine needs besides state and event.
// Numeric values are validated by the settings layer, not here.
type TransitionConfig struct {
	Preset           Preset
	FocusMode        FocusMode
	StrictPauseLimit int
	AutoStartBreaks  bool
	AutoStartWork    bool
}

func DefaultTransitionConfig() TransitionConfig {
	return TransitionConfig{
		Preset:           DefaultPreset(),
		FocusMode:        FocusStrict,
		StrictPauseLimit: 1,
		AutoStartBreaks:  true,
		AutoStartWork:    true,
	}
}

// Duration returns the full length of a phase in milliseconds.
func (c TransitionConfig) Duration(phase Phase) int64 {
	switch phase {
	case PhaseShortBreak:
		return int64(c.Preset.ShortBreakMinutes) * msPerMinute
	case PhaseLongBreak:
		return int64(c.Preset.LongBreakMinutes) * msPerMinute
	default:
		return int64(c.Preset.WorkMinutes) * msPerMinute
	}
}

func (c TransitionConfig) autoStart(phase Phase) bool {
	if phase.IsBreak() {
		return c.AutoStartBreaks
	}
	return c.AutoStartWork
}

// PauseBlocked reports whether strict focus forbids another pause in the current phase.
func (c TransitionConfig) PauseBlocked(phase Phase, pauseCount int) bool {
	return c.FocusMode == FocusStrict && phase == PhaseWork && pauseCount >= c.StrictPauseLimit
}
