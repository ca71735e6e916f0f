package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryService implements Service in process memory. Sessions live for
// the lifetime of the process. Safe for concurrent use.
type InMemoryService struct {
	mu       sync.RWMutex
	sessions map[string]*Session // keyed by appName|userID|sessionID
}

// NewInMemoryService creates an empty in-memory session service.
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		sessions: make(map[string]*Session),
	}
}

func memKey(appName, userID, sessionID string) string {
	return appName + "|" + userID + "|" + sessionID
}

func (s *InMemoryService) Create(ctx context.Context, appName, userID string, initial State) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		AppName:   appName,
		UserID:    userID,
		State:     initial.Clone(),
		Events:    make([]Event, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[memKey(appName, userID, sess.ID)] = copySession(sess)
	return sess, nil
}

func (s *InMemoryService) Get(ctx context.Context, appName, userID, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[memKey(appName, userID, sessionID)]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(sess), nil
}

func (s *InMemoryService) List(ctx context.Context, appName, userID string) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := make([]*Session, 0)
	for _, sess := range s.sessions {
		if sess.AppName == appName && sess.UserID == userID {
			ret = append(ret, copySession(sess))
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].CreatedAt.After(ret[j].CreatedAt)
	})
	return ret, nil
}

func (s *InMemoryService) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey(sess.AppName, sess.UserID, sess.ID)
	stored, ok := s.sessions[key]
	if !ok {
		return ErrNotFound
	}
	stored.State = sess.State.Clone()
	stored.UpdatedAt = time.Now().UTC()
	sess.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *InMemoryService) AppendEvent(ctx context.Context, sess *Session, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[memKey(sess.AppName, sess.UserID, sess.ID)]
	if !ok {
		return ErrNotFound
	}
	stored.Events = append(stored.Events, event)
	stored.UpdatedAt = time.Now().UTC()
	sess.Events = append(sess.Events, event)
	sess.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *InMemoryService) Delete(ctx context.Context, appName, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, memKey(appName, userID, sessionID))
	return nil
}

func (s *InMemoryService) Close() error {
	return nil
}

// copySession returns a deep copy so callers cannot mutate stored state
// through a shared pointer.
func copySession(sess *Session) *Session {
	out := *sess
	out.State = sess.State.Clone()
	out.Events = make([]Event, len(sess.Events))
	copy(out.Events, sess.Events)
	return &out
}
