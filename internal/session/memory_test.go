package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryService_CreateAndGet(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "memory_agent", "user-1", State{"user_name": "John"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, "memory_agent", "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "John", got.State.Get("user_name", ""))
}

func TestInMemoryService_GetMissing(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	_, err := svc.Get(context.Background(), "app", "user", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryService_ListMostRecentFirst(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)

	// Another user's session must not leak into the listing.
	_, err = svc.Create(ctx, "app", "other", State{})
	require.NoError(t, err)

	sessions, err := svc.List(ctx, "app", "user")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)
}

func TestInMemoryService_SavePersistsState(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	sess, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)

	SetUserName(sess.State, "Jane")
	SetReminders(sess.State, []string{"buy milk"})
	require.NoError(t, svc.Save(ctx, sess))

	got, err := svc.Get(ctx, "app", "user", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", UserName(got.State))
	assert.Equal(t, []string{"buy milk"}, Reminders(got.State))
}

func TestInMemoryService_StoreIsolation(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	sess, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)

	// Mutating the returned snapshot without Save must not affect the store.
	SetUserName(sess.State, "Jane")

	got, err := svc.Get(ctx, "app", "user", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "", UserName(got.State))
}

func TestInMemoryService_AppendEvent(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	sess, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)

	require.NoError(t, svc.AppendEvent(ctx, sess, Event{Author: "user", Content: "hi"}))
	require.NoError(t, svc.AppendEvent(ctx, sess, Event{Author: "memory_agent", Content: "hello"}))

	got, err := svc.Get(ctx, "app", "user", sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "user", got.Events[0].Author)
	assert.Equal(t, "memory_agent", got.Events[1].Author)
	assert.NotEmpty(t, got.Events[0].ID)
	assert.False(t, got.Events[0].Timestamp.IsZero())
}

func TestInMemoryService_Delete(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	sess, err := svc.Create(ctx, "app", "user", State{})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "app", "user", sess.ID))

	_, err = svc.Get(ctx, "app", "user", sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindOrCreate(t *testing.T) {
	t.Parallel()

	svc := NewInMemoryService()
	ctx := context.Background()

	sess, created, err := FindOrCreate(ctx, svc, "app", "user", State{"user_name": "John"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "John", UserName(sess.State))

	// Second discovery for the same (app, user) returns the existing session.
	again, created, err := FindOrCreate(ctx, svc, "app", "user", State{"user_name": "ignored"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sess.ID, again.ID)
	assert.Equal(t, "John", UserName(again.State))
}
