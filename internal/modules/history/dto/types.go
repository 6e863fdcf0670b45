package dto

type StatsInput struct {
	Range string
	From  string
	To    string
}

type DayOutput struct {
	Date                  string
	CompletedWorkSessions int
}

type StatsOutput struct {
	Start string
	End   string
	Days  []DayOutput
	Total int
}
