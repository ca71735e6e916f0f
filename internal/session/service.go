package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no session matches the identifier.
// A lookup miss is expected during session discovery and triggers
// fallback creation, it is not a failure condition.
var ErrNotFound = errors.New("session not found")

// Service manages session lifecycle: creation, lookup, persistence and
// deletion. Implementations exist for process memory, sqlite and redis.
type Service interface {
	// Create stores a new session for (appName, userID) with the given
	// initial state snapshot and a generated identifier.
	Create(ctx context.Context, appName, userID string, initial State) (*Session, error)

	// Get returns the session with the given identifier, or ErrNotFound.
	Get(ctx context.Context, appName, userID, sessionID string) (*Session, error)

	// List returns all sessions for (appName, userID), most recently
	// created first.
	List(ctx context.Context, appName, userID string) ([]*Session, error)

	// Save persists the session's current state.
	Save(ctx context.Context, sess *Session) error

	// AppendEvent appends an event to the session's log and persists it.
	AppendEvent(ctx context.Context, sess *Session, event Event) error

	// Delete removes the session and its events.
	Delete(ctx context.Context, appName, userID, sessionID string) error

	// Close releases any resources held by the service.
	Close() error
}

// FindOrCreate returns the most recently created existing session for
// (appName, userID) if any, else creates one with the supplied initial
// state. The boolean reports whether a new session was created.
func FindOrCreate(ctx context.Context, svc Service, appName, userID string, initial State) (*Session, bool, error) {
	existing, err := svc.List(ctx, appName, userID)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}

	sess, err := svc.Create(ctx, appName, userID, initial)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}
