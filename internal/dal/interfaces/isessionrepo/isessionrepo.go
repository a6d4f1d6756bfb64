package isessionrepo

import (
	"context"
	"errors"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
)

// ErrNotFound is returned when no session matches the given token.
var ErrNotFound = errors.New("session not found")

// ISessionRepository is an interface for session postgres repository.
type ISessionRepository interface {
	Insert(ctx context.Context, s session.Session) error
	GetByToken(ctx context.Context, token string) (*session.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
