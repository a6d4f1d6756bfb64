package memoryrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
)

func TestGetUnknownClientYieldsEmptyCart(t *testing.T) {
	repo := NewMemoryCartRepository()

	c, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ClientID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.RestaurantID)
}

func TestSaveAndGetCopies(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	saved := &cart.Cart{
		ClientID:     7,
		RestaurantID: 10,
		Items:        []cart.CartItem{{ProductID: 1, Quantity: 1, PriceCents: 3590}},
	}
	require.NoError(t, repo.Save(ctx, saved))

	// Mutating the caller's slice must not leak into the stored cart.
	saved.Items[0].Quantity = 99

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)

	// Mutating a loaded copy must not leak either.
	got.Items[0].Quantity = 50
	again, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestDelete(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &cart.Cart{
		ClientID: 7,
		Items:    []cart.CartItem{{ProductID: 1, Quantity: 1}},
	}))
	require.NoError(t, repo.Delete(ctx, 7))

	c, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
