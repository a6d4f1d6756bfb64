package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	c := Cart{
		ClientID:     1,
		RestaurantID: 10,
		Items: []CartItem{
			{ProductID: 1, Quantity: 1, PriceCents: 3590},
			{ProductID: 2, Quantity: 2, PriceCents: 1200},
		},
	}

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(5990), c.TotalPriceCents())
}

func TestTotalsEmpty(t *testing.T) {
	c := Cart{ClientID: 1}

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, int64(0), c.TotalPriceCents())
}
