package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/remora-ai/remora/internal/session"
)

// RedisService implements session.Service on Redis. Sessions are stored
// as JSON blobs, with a per-(app, user) index set for listing. An
// optional TTL expires idle sessions; the index is pruned lazily.
type RedisService struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ session.Service = (*RedisService)(nil)

type RedisOption func(*RedisService)

// WithTTL sets the expiration for sessions. Zero means no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisService) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisService) {
		s.prefix = prefix
	}
}

// NewRedisService creates a Redis-backed session service.
func NewRedisService(address, password string, db int, opts ...RedisOption) *RedisService {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisServiceFromClient(client, opts...)
}

// NewRedisServiceFromClient creates a Redis-backed session service from
// an existing client.
func NewRedisServiceFromClient(client *backend.Client, opts ...RedisOption) *RedisService {
	svc := &RedisService{
		client: client,
		prefix: "remora:session:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *RedisService) key(appName, userID, sessionID string) string {
	return s.prefix + appName + ":" + userID + ":" + sessionID
}

func (s *RedisService) indexKey(appName, userID string) string {
	return s.prefix + "index:" + appName + ":" + userID
}

func (s *RedisService) Create(ctx context.Context, appName, userID string, initial session.State) (*session.Session, error) {
	now := time.Now().UTC()
	sess := &session.Session{
		ID:        uuid.NewString(),
		AppName:   appName,
		UserID:    userID,
		State:     initial.Clone(),
		Events:    make([]session.Event, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisService) Get(ctx context.Context, appName, userID, sessionID string) (*session.Session, error) {
	data, err := s.client.Get(ctx, s.key(appName, userID, sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisService) List(ctx context.Context, appName, userID string) ([]*session.Session, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(appName, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}

	ret := make([]*session.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.Get(ctx, appName, userID, id)
		if errors.Is(err, session.ErrNotFound) {
			// Expired via TTL. Prune the stale index entry.
			_ = s.client.SRem(ctx, s.indexKey(appName, userID), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, sess)
	}

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].CreatedAt.After(ret[j].CreatedAt)
	})
	return ret, nil
}

func (s *RedisService) Save(ctx context.Context, sess *session.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	return s.write(ctx, sess)
}

func (s *RedisService) AppendEvent(ctx context.Context, sess *session.Session, event session.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	sess.Events = append(sess.Events, event)
	sess.UpdatedAt = time.Now().UTC()
	return s.write(ctx, sess)
}

func (s *RedisService) Delete(ctx context.Context, appName, userID, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(appName, userID, sessionID))
	pipe.SRem(ctx, s.indexKey(appName, userID), sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) write(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sess.AppName, sess.UserID, sess.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(sess.AppName, sess.UserID), sess.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write: %w", err)
	}
	return nil
}
