package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryService_SweepIdle(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	defer svc.Close()

	ctx := context.Background()

	stale, err := svc.Create(ctx, "app", "u", nil)
	require.NoError(t, err)

	// Backdate the stored copy.
	svc.mu.Lock()
	svc.sessions[memKey("app", "u", stale.ID)].UpdatedAt = time.Now().UTC().Add(-48 * time.Hour)
	svc.mu.Unlock()

	fresh, err := svc.Create(ctx, "app", "u", nil)
	require.NoError(t, err)

	otherApp, err := svc.Create(ctx, "other", "u", nil)
	require.NoError(t, err)

	removed, err := svc.SweepIdle(ctx, "app", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = svc.Get(ctx, "app", "u", stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "app", "u", fresh.ID)
	assert.NoError(t, err)

	// Other apps are untouched even when idle.
	_, err = svc.Get(ctx, "other", "u", otherApp.ID)
	assert.NoError(t, err)
}
