package persistence

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/remora-ai/remora/internal/session"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteService implements session.Service on a local sqlite file, so
// sessions and their event logs survive process restarts.
type SQLiteService struct {
	db *sql.DB
}

var _ session.Service = (*SQLiteService)(nil)

func NewSQLiteService(path string) (*SQLiteService, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	svc := &SQLiteService{db: db}
	if err := svc.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return svc, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

func (s *SQLiteService) Create(ctx context.Context, appName, userID string, initial session.State) (*session.Session, error) {
	stateJSON, err := json.Marshal(initial.Clone())
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}

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

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (id, app_name, user_id, state_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.AppName, sess.UserID, string(stateJSON), sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteService) Get(ctx context.Context, appName, userID, sessionID string) (*session.Session, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, app_name, user_id, state_json, created_at, updated_at
		 FROM sessions
		 WHERE id = ? AND app_name = ? AND user_id = ?`,
		sessionID, appName, userID,
	)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}

	events, err := s.loadEvents(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	sess.Events = events
	return sess, nil
}

func (s *SQLiteService) List(ctx context.Context, appName, userID string) ([]*session.Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, app_name, user_id, state_json, created_at, updated_at
		 FROM sessions
		 WHERE app_name = ? AND user_id = ?
		 ORDER BY created_at DESC`,
		appName, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Event logs are not hydrated here; use Get for the full session.
	ret := make([]*session.Session, 0)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *SQLiteService) Save(ctx context.Context, sess *session.Session) error {
	stateJSON, err := json.Marshal(sess.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET state_json = ?, updated_at = ? WHERE id = ?`,
		string(stateJSON), now, sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	sess.UpdatedAt = now
	return nil
}

func (s *SQLiteService) AppendEvent(ctx context.Context, sess *session.Session, event session.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	toolCallsJSON, err := json.Marshal(event.ToolCalls)
	if err != nil {
		return fmt.Errorf("marshal tool calls: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO events (id, session_id, author, content, tool_calls_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, sess.ID, event.Author, event.Content, string(toolCallsJSON), event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sess.ID); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}

	sess.Events = append(sess.Events, event)
	sess.UpdatedAt = now
	return nil
}

func (s *SQLiteService) Delete(ctx context.Context, appName, userID, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE id = ? AND app_name = ? AND user_id = ?`,
		sessionID, appName, userID,
	)
	return err
}

func (s *SQLiteService) loadEvents(ctx context.Context, sessionID string) ([]session.Event, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, author, content, tool_calls_json, created_at
		 FROM events
		 WHERE session_id = ?
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]session.Event, 0)
	for rows.Next() {
		var event session.Event
		var toolCallsJSON string
		if err := rows.Scan(&event.ID, &event.Author, &event.Content, &toolCallsJSON, &event.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(toolCallsJSON), &event.ToolCalls); err != nil {
			return nil, fmt.Errorf("decode tool calls: %w", err)
		}
		ret = append(ret, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var sess session.Session
	var stateJSON string
	if err := row.Scan(&sess.ID, &sess.AppName, &sess.UserID, &stateJSON, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return nil, err
	}
	sess.State = session.State{}
	if err := json.Unmarshal([]byte(stateJSON), &sess.State); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	sess.Events = make([]session.Event, 0)
	return &sess, nil
}
