package session

import (
	"context"
	"time"
)

// Sweeper is implemented by backends that can bulk-remove idle
// sessions. The redis backend expires sessions through TTLs instead
// and does not implement it.
type Sweeper interface {
	// SweepIdle deletes every session of the app not updated within
	// maxAge and returns how many were removed.
	SweepIdle(ctx context.Context, appName string, maxAge time.Duration) (int, error)
}

// SweepIdle removes sessions whose last update is older than maxAge.
func (s *InMemoryService) SweepIdle(ctx context.Context, appName string, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, sess := range s.sessions {
		if sess.AppName == appName && sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed, nil
}
