package order

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// Order represents a placed order in the system.
type Order struct {
	ID                 int64                 `json:"id"`
	ClientID           int64                 `json:"clientId"`
	RestaurantID       int64                 `json:"restaurantId"`
	Status             status.Status         `json:"status"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"items"`
}

// TotalOf computes an order total as the sum of quantity times unit price.
func TotalOf(items []orderitem.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.PriceCents
	}

	return total
}
