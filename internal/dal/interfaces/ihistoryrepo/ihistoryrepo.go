package ihistoryrepo

import (
	"context"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
)

// IHistoryRepository is an interface for the order status audit trail.
type IHistoryRepository interface {
	Insert(ctx context.Context, change history.StatusChange) error
	ListByOrder(ctx context.Context, orderID int64) ([]history.StatusChange, error)
	DeleteByOrder(ctx context.Context, orderID int64) error
}
