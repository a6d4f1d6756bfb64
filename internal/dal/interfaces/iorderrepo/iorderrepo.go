package iorderrepo

import (
	"context"
	"errors"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
)

// ErrNotFound is returned when no order matches the given id.
var ErrNotFound = errors.New("order not found")

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Update(ctx context.Context, o order.Order) (order.Order, error)
	Delete(ctx context.Context, id int64) error
}
