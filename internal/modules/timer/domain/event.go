package domain

type EventKind string

const (
	EventStart            EventKind = "START"
	EventPause            EventKind = "PAUSE"
	EventResume           EventKind = "RESUME"
	EventReset            EventKind = "RESET"
	EventTick             EventKind = "TICK"
	EventAppResume        EventKind = "APP_RESUME"
	EventCallInterruption EventKind = "CALL_INTERRUPTION"
	EventTimeChange       EventKind = "TIME_CHANGE"
)

// Event is an input to the engine. Now is epoch milliseconds; Reason only
// applies to RESET.
type Event struct {
	Kind   EventKind
	Now    int64
	Reason Warning
}

func Start(now int64) Event            { return Event{Kind: EventStart, Now: now} }
func Pause(now int64) Event            { return Event{Kind: EventPause, Now: now} }
func Resume(now int64) Event           { return Event{Kind: EventResume, Now: now} }
func Tick(now int64) Event             { return Event{Kind: EventTick, Now: now} }
func AppResume(now int64) Event        { return Event{Kind: EventAppResume, Now: now} }
func CallInterruption(now int64) Event { return Event{Kind: EventCallInterruption, Now: now} }
func TimeChange(now int64) Event       { return Event{Kind: EventTimeChange, Now: now} }

func Reset(now int64, reason Warning) Event {
	return Event{Kind: EventReset, Now: now, Reason: reason}
}
