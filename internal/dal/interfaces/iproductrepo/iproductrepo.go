package iproductrepo

import (
	"context"
	"errors"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
)

// ErrNotFound is returned when no product matches the given id.
var ErrNotFound = errors.New("product not found")

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	Delete(ctx context.Context, id int64) error
}
