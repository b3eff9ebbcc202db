package contract

import (
	"context"
	"errors"

	"contract-assistant-be/pkg/store"
)

// ErrSessionNotFound is returned by Get when the id names no live session.
var ErrSessionNotFound = errors.New("session not found")

// ISessionRepository stores whole sessions. Implementations must return copies,
// so a session read and never saved leaves stored state untouched.
type ISessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]*store.Session, error)
	Count(ctx context.Context) (int, error)
}
