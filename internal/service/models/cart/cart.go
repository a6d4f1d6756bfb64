package cart

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
)

// CartItem is a selected product with a quantity. Price and title are
// snapshots taken when the product was added.
type CartItem struct {
	ProductID     int64             `json:"productId"`
	Quantity      int               `json:"quantity"`
	ProductTitle  string            `json:"productTitle"`
	ProductUrl    string            `json:"productUrl"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
}

// Cart holds the pending selection of one client. All items belong to the
// restaurant the cart is bound to; RestaurantID is zero while unbound.
type Cart struct {
	ClientID     int64      `json:"clientId"`
	RestaurantID int64      `json:"restaurantId"`
	Items        []CartItem `json:"items"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of quantities over all items.
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}

	return total
}

// TotalPriceCents is the sum of quantity times unit price over all items.
// It is always computed from the items, never stored.
func (c *Cart) TotalPriceCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += int64(item.Quantity) * item.PriceCents
	}

	return total
}
