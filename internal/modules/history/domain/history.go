package domain

import (
	"errors"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// DailyEntry counts completed work sessions on one local calendar day.
type DailyEntry struct {
	Date                  string
	CompletedWorkSessions int
}

type Timeframe string

const (
	TimeframeWeek   Timeframe = "7"
	TimeframeMonth  Timeframe = "30"
	TimeframeCustom Timeframe = "custom"
)

// DateRange is an inclusive span of local dates.
type DateRange struct {
	Start string
	End   string
}

func LocalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts only YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}
	return t, nil
}

// IncrementDailyCount adds delta to date and returns the entries sorted by date.
func IncrementDailyCount(entries []DailyEntry, date string, delta int) []DailyEntry {
	out := make([]DailyEntry, 0, len(entries)+1)
	found := false
	for _, e := range entries {
		if e.Date == date {
			e.CompletedWorkSessions += delta
			found = true
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, DailyEntry{Date: date, CompletedWorkSessions: delta})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Range resolves a timeframe against now. A custom timeframe needs both
// bounds; otherwise it falls back to the last seven days.
func Range(tf Timeframe, now time.Time, customStart, customEnd string) DateRange {
	if tf == TimeframeCustom && customStart != "" && customEnd != "" {
		return DateRange{Start: customStart, End: customEnd}
	}
	days := 7
	if tf == TimeframeMonth {
		days = 30
	}
	y, m, d := now.Date()
	start := time.Date(y, m, d-(days-1), 0, 0, 0, 0, time.UTC)
	return DateRange{Start: LocalDate(start), End: LocalDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

// BuildSeries returns one entry per day in r, zero-filled. An inverted range
// yields an empty series.
func BuildSeries(entries []DailyEntry, r DateRange) ([]DailyEntry, error) {
	start, err := ParseDate(r.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]int, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e.CompletedWorkSessions
	}
	var series []DailyEntry
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		key := LocalDate(cursor)
		series = append(series, DailyEntry{Date: key, CompletedWorkSessions: byDate[key]})
	}
	return series, nil
}

func Total(series []DailyEntry) int {
	total := 0
	for _, e := range series {
		total += e.CompletedWorkSessions
	}
	return total
}
