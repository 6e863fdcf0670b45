package service

import (
	"context"
	"time"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"
	"pomo/internal/platform/clock"
)

type HistoryService struct {
	clock    clock.Clock
	store    historyout.Store
	location *time.Location
}

func NewHistoryService(clock clock.Clock, store historyout.Store, location *time.Location) *HistoryService {
	if location == nil {
		location = time.Local
	}
	return &HistoryService{clock: clock, store: store, location: location}
}

func (s *HistoryService) RecordCompletion(ctx context.Context, date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	return s.store.Modify(ctx, date, func(current []domain.DailyEntry) []domain.DailyEntry {
		return domain.IncrementDailyCount(current, date, 1)
	})
}

func (s *HistoryService) Series(ctx context.Context, tf domain.Timeframe, start, end string) (domain.DateRange, []domain.DailyEntry, error) {
	r := domain.Range(tf, s.clock.Now().In(s.location), start, end)
	entries, err := s.store.List(ctx, r.Start, r.End)
	if err != nil {
		return domain.DateRange{}, nil, err
	}
	series, err := domain.BuildSeries(entries, r)
	if err != nil {
		return domain.DateRange{}, nil, err
	}
	return r, series, nil
}

func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
