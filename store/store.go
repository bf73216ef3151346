// Package store defines the durable read/write contract for room sessions
// and reusable templates: one record per room holding the whole session
// document plus its version, one record per template.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/Sieru626/boardgame-venue-sub000/session"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

var (
	ErrUnknownRoomID     = errors.New("unknown room ID")
	ErrUnknownTemplateID = errors.New("unknown template ID")
)

// RoomStore persists one session document per room.
type RoomStore interface {
	SaveSession(ctx context.Context, s *session.Session) error
	LoadSession(ctx context.Context, roomID string) (*session.Session, error)
	FindByCode(ctx context.Context, joinCode string) (*session.Session, error)
}

// TemplateStore persists reusable templates for cross-room reuse.
type TemplateStore interface {
	SaveTemplate(ctx context.Context, t *template.Template) error
	LoadTemplate(ctx context.Context, id string) (*template.Template, error)
	ListTemplates(ctx context.Context) ([]*template.Template, error)
}

// InMemoryStore keeps sessions and templates in maps. It backs tests and
// single-run rooms; clones cross the boundary in both directions so
// callers can never mutate a stored document in place.
type InMemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session.Session
	templates map[string]*template.Template
}

// NewInMemoryStore constructs an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions:  map[string]*session.Session{},
		templates: map[string]*template.Template{},
	}
}

func (s *InMemoryStore) SaveSession(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.RoomID] = sess.Clone()
	return nil
}

func (s *InMemoryStore) LoadSession(ctx context.Context, roomID string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[roomID]
	if !ok {
		return nil, ErrUnknownRoomID
	}
	return sess.Clone(), nil
}

func (s *InMemoryStore) FindByCode(ctx context.Context, joinCode string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.JoinCode == joinCode {
			return sess.Clone(), nil
		}
	}
	return nil, ErrUnknownRoomID
}

func (s *InMemoryStore) SaveTemplate(ctx context.Context, t *template.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t.Clone()
	return nil
}

func (s *InMemoryStore) LoadTemplate(ctx context.Context, id string) (*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, ErrUnknownTemplateID
	}
	return t.Clone(), nil
}

func (s *InMemoryStore) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := []*template.Template{}
	for _, t := range s.templates {
		list = append(list, t.Clone())
	}
	return list, nil
}
