package orderitem

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
)

// OrderItem represents an item within an order. Title, url and price are
// snapshots taken when the item entered the cart, not live catalog values.
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	ProductID     int64             `json:"productId"`
	Quantity      int               `json:"quantity"`
	ProductTitle  string            `json:"productTitle"`
	ProductUrl    string            `json:"productUrl"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Observations  string            `json:"observations,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
