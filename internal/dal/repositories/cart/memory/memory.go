package memoryrepo

import (
	"context"
	"sync"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/icartrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
)

// MemoryCartRepository keeps carts in process memory. Carts are lost on
// restart; the Redis repository is the durable alternative.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[int64]cart.Cart
}

var _ icartrepo.ICartRepository = (*MemoryCartRepository)(nil)

// NewMemoryCartRepository creates a new in-memory cart repository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[int64]cart.Cart),
	}
}

// Get loads a cart copy. A missing client yields an empty unbound cart.
func (r *MemoryCartRepository) Get(_ context.Context, clientID int64) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[clientID]
	if !ok {
		return &cart.Cart{ClientID: clientID}, nil
	}

	copied := c
	copied.Items = append([]cart.CartItem(nil), c.Items...)

	return &copied, nil
}

// Save stores a cart snapshot.
func (r *MemoryCartRepository) Save(_ context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *c
	stored.Items = append([]cart.CartItem(nil), c.Items...)
	r.carts[c.ClientID] = stored

	return nil
}

// Delete removes a cart.
func (r *MemoryCartRepository) Delete(_ context.Context, clientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, clientID)

	return nil
}
