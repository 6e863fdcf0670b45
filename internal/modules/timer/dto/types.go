package dto

import "time"

type StateOutput struct {
	Phase                string
	Status               string
	RemainingMs          int64
	PlannedEnd           *time.Time
	CycleLabel           string
	PauseCount           int
	PausesLeft           int
	CompletedWorkInCycle int
	LastCompletedPhase   string
	Warning              string
	Banner               string
	Completed            []string
	WorkActive           bool
	PresetName           string
}

type NotificationOutput struct {
	ID     int
	Phase  string
	FireAt time.Time
	Title  string
	Body   string
}
