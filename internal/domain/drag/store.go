package drag

import (
	"context"
	"errors"
)

var (
	ErrSessionActive = errors.New("a drag session is already active")
	ErrNoSession     = errors.New("no active drag session")
)

// SessionStore guarda la única sesión de drag del sistema.
// Create debe fallar con ErrSessionActive si ya existe una.
type SessionStore interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context) (Session, bool, error)
	Replace(ctx context.Context, s Session) error
	Delete(ctx context.Context) error
}
