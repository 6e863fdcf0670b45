package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	"pomo/internal/modules/timer/domain"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "timer-state.json")
	store := timeroutadapter.NewFileStateStore(path)
	ctx := context.Background()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := domain.DefaultTransitionConfig()
	state := domain.Transition(domain.DefaultSessionClock(cfg), domain.Start(1_000), cfg).State
	state = domain.Transition(state, domain.Pause(61_000), cfg).State
	require.NoError(t, store.Save(ctx, state))

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStateStoreRejectsCorruptDocuments(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))
	_, _, err := timeroutadapter.NewFileStateStore(garbage).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidClock)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"phase":"work","status":"running","planned_end_timestamp":null}`), 0o644))
	_, _, err = timeroutadapter.NewFileStateStore(broken).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidClock)
}
