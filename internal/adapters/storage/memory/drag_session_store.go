package memory

import (
	"context"
	"sync"

	"kennel-scheduler/internal/domain/drag"
)

// dragSessionStore guarda la sesión de drag en proceso. Hay como mucho una.
type dragSessionStore struct {
	mu   sync.Mutex
	sess *drag.Session
}

func NewDragSessionStore() drag.SessionStore {
	return &dragSessionStore{}
}

func (s *dragSessionStore) Create(ctx context.Context, sess drag.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		return drag.ErrSessionActive
	}
	s.sess = &sess
	return nil
}

func (s *dragSessionStore) Get(ctx context.Context) (drag.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return drag.Session{}, false, nil
	}
	return *s.sess, true, nil
}

func (s *dragSessionStore) Replace(ctx context.Context, sess drag.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return drag.ErrNoSession
	}
	s.sess = &sess
	return nil
}

func (s *dragSessionStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	return nil
}
