package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/platform/sqlite"
)

func TestOpenAppliesMigrationsInWALMode(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "pomo.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode;").Scan(&mode))
	assert.Equal(t, "wal", mode)

	version, err := sqlite.UserVersion(db)
	require.NoError(t, err)
	assert.Equal(t, sqlite.CurrentSchemaVersion, version)

	for _, table := range []string{"daily_history", "scheduled_notifications"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pomo.db")
	first, err := sqlite.Open(path)
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO daily_history(date, completed_work_sessions) VALUES('2026-10-01', 3)")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(path)
	require.NoError(t, err)
	defer second.Close()
	var count int
	require.NoError(t, second.QueryRow("SELECT completed_work_sessions FROM daily_history WHERE date='2026-10-01'").Scan(&count))
	assert.Equal(t, 3, count)
}
