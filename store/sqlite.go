package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sieru626/boardgame-venue-sub000/session"
	"github.com/Sieru626/boardgame-venue-sub000/template"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
  id        TEXT PRIMARY KEY,
  join_code TEXT NOT NULL,
  version   INTEGER NOT NULL,
  doc       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS rooms_join_code ON rooms (join_code);
CREATE TABLE IF NOT EXISTS templates (
  id   TEXT PRIMARY KEY,
  mode TEXT NOT NULL,
  doc  TEXT NOT NULL
);`

// SQLiteStore persists sessions and templates as JSON documents in
// SQLite, one row per room and per template.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initialises) the store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess *session.Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rooms (id, join_code, version, doc) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET join_code = excluded.join_code,
		   version = excluded.version, doc = excluded.doc`,
		sess.RoomID, sess.JoinCode, sess.Version, string(doc))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSession(ctx context.Context, roomID string) (*session.Session, error) {
	return s.loadSessionBy(ctx, `SELECT doc FROM rooms WHERE id = ?`, roomID)
}

func (s *SQLiteStore) FindByCode(ctx context.Context, joinCode string) (*session.Session, error) {
	return s.loadSessionBy(ctx, `SELECT doc FROM rooms WHERE join_code = ?`, joinCode)
}

// loadSessionBy decodes one stored document. A document that fails to
// decode is a fail-closed refusal to act, never a best-effort repair.
func (s *SQLiteStore) loadSessionBy(ctx context.Context, query, arg string) (*session.Session, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownRoomID
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess := &session.Session{}
	if err := json.Unmarshal([]byte(doc), sess); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) SaveTemplate(ctx context.Context, t *template.Template) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (id, mode, doc) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET mode = excluded.mode, doc = excluded.doc`,
		t.ID, t.Mode, string(doc))
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadTemplate(ctx context.Context, id string) (*template.Template, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM templates WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownTemplateID
	}
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	t := &template.Template{}
	if err := json.Unmarshal([]byte(doc), t); err != nil {
		return nil, fmt.Errorf("decode stored template: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	list := []*template.Template{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("list templates: %w", err)
		}
		t := &template.Template{}
		if err := json.Unmarshal([]byte(doc), t); err != nil {
			return nil, fmt.Errorf("decode stored template: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
