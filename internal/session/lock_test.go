package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManager_SerializesSameSession(t *testing.T) {
	t.Parallel()

	m := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock("sess-1", func() error {
				counter++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockManager_ReleasesEntries(t *testing.T) {
	t.Parallel()

	m := NewLockManager()
	require.NoError(t, m.WithLock("sess-1", func() error { return nil }))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks, "lock entries should be garbage collected once unused")
}

func TestLockManager_PropagatesError(t *testing.T) {
	t.Parallel()

	m := NewLockManager()
	err := m.WithLock("sess-1", func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
