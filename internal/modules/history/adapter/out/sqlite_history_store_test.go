package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historyout "pomo/internal/modules/history/adapter/out"
	"pomo/internal/modules/history/domain"
	"pomo/internal/platform/sqlite"
)

func TestSQLiteHistoryStoreModifiesAndLists(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "pomo.db"))
	require.NoError(t, err)
	defer db.Close()
	store := historyout.NewSQLiteHistoryStore(db)
	ctx := context.Background()

	increment := func(date string) {
		t.Helper()
		require.NoError(t, store.Modify(ctx, date, func(current []domain.DailyEntry) []domain.DailyEntry {
			return domain.IncrementDailyCount(current, date, 1)
		}))
	}
	increment("2026-03-02")
	increment("2026-03-01")
	increment("2026-03-02")
	increment("2026-04-01")

	entries, err := store.List(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyEntry{
		{Date: "2026-03-01", CompletedWorkSessions: 1},
		{Date: "2026-03-02", CompletedWorkSessions: 2},
	}, entries)

	require.NoError(t, store.Clear(ctx))
	entries, err = store.List(ctx, "2000-01-01", "2100-01-01")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteHistoryStoreModifySeesStoredEntry(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "pomo.db"))
	require.NoError(t, err)
	defer db.Close()
	store := historyout.NewSQLiteHistoryStore(db)
	ctx := context.Background()

	require.NoError(t, store.Modify(ctx, "2026-03-02", func(current []domain.DailyEntry) []domain.DailyEntry {
		assert.Empty(t, current)
		return []domain.DailyEntry{{Date: "2026-03-02", CompletedWorkSessions: 3}}
	}))
	require.NoError(t, store.Modify(ctx, "2026-03-02", func(current []domain.DailyEntry) []domain.DailyEntry {
		assert.Equal(t, []domain.DailyEntry{{Date: "2026-03-02", CompletedWorkSessions: 3}}, current)
		return current
	}))

	// Entries returned for other dates are not written.
	require.NoError(t, store.Modify(ctx, "2026-03-03", func([]domain.DailyEntry) []domain.DailyEntry {
		return []domain.DailyEntry{{Date: "2026-03-09", CompletedWorkSessions: 7}}
	}))
	entries, err := store.List(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyEntry{{Date: "2026-03-02", CompletedWorkSessions: 3}}, entries)
}
