package domain

import "encoding/json"

type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	default:
		return false
	}
}

func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusRunning, StatusPaused:
		return true
	default:
		return false
	}
}

// Warning records why a session was reset by something other than the user.
// The zero value means no warning and serializes as JSON null.
type Warning string

const (
	WarningNone            Warning = ""
	WarningCallInterrupted Warning = "call_interrupted"
	WarningTimeChanged     Warning = "time_changed"
)

func (w Warning) Valid() bool {
	switch w {
	case WarningNone, WarningCallInterrupted, WarningTimeChanged:
		return true
	default:
		return false
	}
}

func (w Warning) MarshalJSON() ([]byte, error) {
	if w == WarningNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

func (w *Warning) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = WarningNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = Warning(raw)
	return nil
}

type FocusMode string

const (
	FocusStrict FocusMode = "strict"
	FocusLoose  FocusMode = "loose"
)
