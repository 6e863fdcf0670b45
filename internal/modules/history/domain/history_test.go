package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/history/domain"
)

func TestIncrementDailyCount(t *testing.T) {
	t.Parallel()
	entries := domain.IncrementDailyCount(nil, "2026-02-26", 1)
	entries = domain.IncrementDailyCount(entries, "2026-02-26", 1)
	entries = domain.IncrementDailyCount(entries, "2026-02-20", 1)

	assert.Equal(t, []domain.DailyEntry{
		{Date: "2026-02-20", CompletedWorkSessions: 1},
		{Date: "2026-02-26", CompletedWorkSessions: 2},
	}, entries)
}

func TestRange(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 27, 23, 30, 0, 0, time.Local)

	assert.Equal(t, domain.DateRange{Start: "2026-02-21", End: "2026-02-27"}, domain.Range(domain.TimeframeWeek, now, "", ""))
	assert.Equal(t, domain.DateRange{Start: "2026-01-29", End: "2026-02-27"}, domain.Range(domain.TimeframeMonth, now, "", ""))
	assert.Equal(t, domain.DateRange{Start: "2026-01-01", End: "2026-01-03"}, domain.Range(domain.TimeframeCustom, now, "2026-01-01", "2026-01-03"))
	// Incomplete custom bounds fall back to a week.
	assert.Equal(t, domain.DateRange{Start: "2026-02-21", End: "2026-02-27"}, domain.Range(domain.TimeframeCustom, now, "2026-01-01", ""))
}

func TestBuildSeriesZeroFills(t *testing.T) {
	t.Parallel()
	series, err := domain.BuildSeries(
		[]domain.DailyEntry{{Date: "2026-02-25", CompletedWorkSessions: 3}},
		domain.DateRange{Start: "2026-02-24", End: "2026-02-26"},
	)
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyEntry{
		{Date: "2026-02-24", CompletedWorkSessions: 0},
		{Date: "2026-02-25", CompletedWorkSessions: 3},
		{Date: "2026-02-26", CompletedWorkSessions: 0},
	}, series)
	assert.Equal(t, 3, domain.Total(series))
}

func TestBuildSeriesAcrossMonthEnd(t *testing.T) {
	t.Parallel()
	series, err := domain.BuildSeries(nil, domain.DateRange{Start: "2024-02-28", End: "2024-03-01"})
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "2024-02-29", series[1].Date)
}

func TestBuildSeriesEdgeCases(t *testing.T) {
	t.Parallel()
	series, err := domain.BuildSeries(nil, domain.DateRange{Start: "2026-03-02", End: "2026-03-01"})
	require.NoError(t, err)
	assert.Empty(t, series)

	_, err = domain.BuildSeries(nil, domain.DateRange{Start: "03/01/2026", End: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
