package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/remora-ai/remora/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteService_SweepIdle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestStore(t)
	ctx := context.Background()

	stale, err := svc.Create(ctx, "app", "u", nil)
	require.NoError(t, err)
	require.NoError(t, svc.AppendEvent(ctx, stale, session.Event{Author: "user", Content: "hi"}))

	fresh, err := svc.Create(ctx, "app", "u", nil)
	require.NoError(t, err)

	// Backdate the stale session past the cutoff.
	_, err = svc.db.ExecContext(
		ctx,
		`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Add(-48*time.Hour), stale.ID,
	)
	require.NoError(t, err)

	removed, err := svc.SweepIdle(ctx, "app", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = svc.Get(ctx, "app", "u", stale.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err := svc.Get(ctx, "app", "u", fresh.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Events)
}
