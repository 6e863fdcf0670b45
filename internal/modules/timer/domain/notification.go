package domain

// NotificationID is the fixed identifier of the single session-end
// notification, so scheduling replaces and cancelling is idempotent.
const NotificationID = 1001

type ScheduledNotification struct {
	ID     int
	Phase  Phase
	FireAt int64
	Title  string
	Body   string
}

// NotificationText returns the title and body announcing the end of phase.
func NotificationText(phase Phase) (string, string) {
	switch phase {
	case PhaseWork:
		return "Work session complete", "Time for a break."
	case PhaseLongBreak:
		return "Long break complete", "Ready to focus again?"
	default:
		return "Break complete", "Back to work."
	}
}
