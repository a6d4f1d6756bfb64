package iorderitemrepo

import (
	"context"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	ReplaceForOrder(
		ctx context.Context,
		orderID int64,
		orderItems []orderitem.OrderItem,
	) ([]orderitem.OrderItem, error)
	DeleteByOrder(ctx context.Context, orderID int64) error
}
