package domain

type EffectKind string

const (
	EffectScheduleNotification EffectKind = "schedule-notification"
	EffectCancelNotification   EffectKind = "cancel-notification"
	EffectSessionCompleted     EffectKind = "session-completed"
	EffectBanner               EffectKind = "banner"
)

// Effect describes a side effect for collaborators to perform. Only the
// fields relevant to Kind are set.
type Effect struct {
	Kind                EffectKind
	Phase               Phase
	PlannedEndTimestamp int64
	CompletedWork       bool
	Reason              Warning
}

func ScheduleNotification(phase Phase, plannedEnd int64) Effect {
	return Effect{Kind: EffectScheduleNotification, Phase: phase, PlannedEndTimestamp: plannedEnd}
}

func CancelNotification() Effect {
	return Effect{Kind: EffectCancelNotification}
}

func SessionCompleted(phase Phase) Effect {
	return Effect{Kind: EffectSessionCompleted, Phase: phase, CompletedWork: phase == PhaseWork}
}

func Banner(reason Warning) Effect {
	return Effect{Kind: EffectBanner, Reason: reason}
}
