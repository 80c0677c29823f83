package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authout "climblog/internal/modules/auth/adapter/out"
	"climblog/internal/platform/clock"
	apperrors "climblog/internal/platform/errors"
)

func TestSQLiteCredentialStoreRoundTripAndPersistence(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "nested", "climblog.db")
	saved := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	ctx := context.Background()

	store, err := authout.NewSQLiteCredentialStore(dbPath, clock.Fixed(saved))
	require.NoError(t, err)

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.Set(ctx, "first"))
	require.NoError(t, store.Set(ctx, "second"))
	require.NoError(t, store.Close())

	reopened, err := authout.NewSQLiteCredentialStore(dbPath, clock.Fixed(saved))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	token, err := reopened.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", token)
	ts, err := reopened.UpdatedAt(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, ts)

	require.NoError(t, reopened.Clear(ctx))
	_, err = reopened.Get(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = reopened.UpdatedAt(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.NoError(t, reopened.Clear(ctx))
}
