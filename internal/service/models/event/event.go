package event

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// Type identifies what happened to an order.
type Type string

const (
	TypeOrderCreated       Type = "order.created"
	TypeOrderStatusChanged Type = "order.status_changed"
	TypeOrderCanceled      Type = "order.canceled"
	TypeOrderDeleted       Type = "order.deleted"
)

// OrderEvent is the payload published to the order events queue through
// the outbox.
type OrderEvent struct {
	Type         Type          `json:"type"`
	OrderID      int64         `json:"orderId"`
	ClientID     int64         `json:"clientId"`
	RestaurantID int64         `json:"restaurantId"`
	Status       status.Status `json:"status"`
	OccurredAt   time.Time     `json:"occurredAt"`
}
