package iuserrepo

import (
	"context"
	"errors"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

// ErrNotFound is returned when no user matches the given id or email.
var ErrNotFound = errors.New("user not found")

// IUserRepository is an interface for user postgres repository.
type IUserRepository interface {
	Insert(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
