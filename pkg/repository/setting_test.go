package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	v, err := repos.Setting.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, repos.Setting.SetSetting(ctx, "k", "v1"))
	require.NoError(t, repos.Setting.SetSetting(ctx, "k", "v2"))
	v, err = repos.Setting.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	_, ok, err := repos.Setting.GetTime(ctx, "ts")
	require.NoError(t, err)
	assert.False(t, ok)

	ts := time.Date(2025, 5, 1, 10, 0, 0, 123, time.FixedZone("X", 7200))
	require.NoError(t, repos.Setting.SetTime(ctx, "ts", ts))
	got, ok, err := repos.Setting.GetTime(ctx, "ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ts.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	require.NoError(t, repos.Setting.SetSetting(ctx, "bad", "not a time"))
	_, _, err = repos.Setting.GetTime(ctx, "bad")
	assert.Error(t, err)
}

func TestWithLockRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (5) (SQLITE_BUSY)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		orig := errors.New("constraint failed")
		err := withLockRetry(context.Background(), func() error {
			calls++
			return orig
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, orig)
		assert.Equal(t, 1, calls)
	})
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("SQLITE_BUSY")))
	assert.True(t, isLockError(errors.New("database table is locked")))
	assert.False(t, isLockError(errors.New("no such table")))
}

func TestTimestampSQL(t *testing.T) {
	var ts timestampSQL
	require.NoError(t, ts.Scan("2025-05-01 10:00:00"))
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), time.Time(ts))

	require.NoError(t, ts.Scan([]byte("2025-05-01 10:00:00.250")))
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 250_000_000, time.UTC), time.Time(ts))

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(3.14))

	v, err := timestampSQL(time.Date(2025, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 7200))).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01 10:00:00.000", v)
}
