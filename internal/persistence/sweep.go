package persistence

import (
	"context"
	"fmt"
	"time"
)

// SweepIdle deletes sessions of the app whose last update is older than
// maxAge, together with their events.
func (s *SQLiteService) SweepIdle(ctx context.Context, appName string, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	if _, err := s.db.ExecContext(
		ctx,
		`DELETE FROM events WHERE session_id IN (
			SELECT id FROM sessions WHERE app_name = ? AND updated_at < ?
		)`,
		appName, cutoff,
	); err != nil {
		return 0, fmt.Errorf("sweep events: %w", err)
	}

	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE app_name = ? AND updated_at < ?`,
		appName, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
