package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kennel-scheduler/internal/domain/drag"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultSessionKey = "kennel:drag:session"

// DragSessionStore comparte la sesión de drag entre instancias de la API.
// SETNX garantiza que sólo una sesión exista a la vez. Sin TTL: no hay timeouts.
type DragSessionStore struct {
	client *goredis.Client
	key    string
}

func NewDragSessionStore(client *goredis.Client, key string) *DragSessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &DragSessionStore{client: client, key: key}
}

func (s *DragSessionStore) Create(ctx context.Context, sess drag.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode drag session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key, b, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return drag.ErrSessionActive
	}
	return nil
}

func (s *DragSessionStore) Get(ctx context.Context) (drag.Session, bool, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return drag.Session{}, false, nil
	}
	if err != nil {
		return drag.Session{}, false, fmt.Errorf("redis get: %w", err)
	}

	var sess drag.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return drag.Session{}, false, fmt.Errorf("decode drag session: %w", err)
	}
	return sess, true, nil
}

func (s *DragSessionStore) Replace(ctx context.Context, sess drag.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode drag session: %w", err)
	}

	ok, err := s.client.SetXX(ctx, s.key, b, goredis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("redis setxx: %w", err)
	}
	if !ok {
		return drag.ErrNoSession
	}
	return nil
}

func (s *DragSessionStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
