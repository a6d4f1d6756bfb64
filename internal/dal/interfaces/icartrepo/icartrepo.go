package icartrepo

import (
	"context"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
)

// ICartRepository is an interface for cart storage. Get returns an empty
// unbound cart, not an error, when the client has no saved cart.
type ICartRepository interface {
	Get(ctx context.Context, clientID int64) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, clientID int64) error
}
