package history

import (
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// StatusChange is one entry of an order's status audit trail. Written in the
// same transaction as the order mutation it records.
type StatusChange struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"orderId"`
	Status    status.Status `json:"status"`
	ChangedBy int64         `json:"changedBy"`
	Notes     string        `json:"notes,omitempty"`
	ChangedAt time.Time     `json:"changedAt"`
}
