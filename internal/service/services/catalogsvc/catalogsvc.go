package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
)

var (
	ErrForbidden    = errors.New("product belongs to another restaurant")
	ErrInvalidPrice = errors.New("price must be positive")
)

type CatalogService struct {
	productRepo iproductrepo.IProductRepository
}

type option func(*CatalogService)

func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CatalogService) {
		s.productRepo = repo
	}
}

func MustNewCatalogService(opts ...option) *CatalogService {
	service := &CatalogService{}
	for _, opt := range opts {
		opt(service)
	}

	if service.productRepo == nil {
		panic("catalog service requires a product repository")
	}

	return service
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting product: %w", err)
	}

	return p, nil
}

// List returns catalog entries matching the filter. A nil filter lists
// everything.
func (s *CatalogService) List(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	products, err := s.productRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying products: %w", err)
	}

	return products, nil
}

func (s *CatalogService) ListByRestaurant(ctx context.Context, restaurantID int64) ([]product.Product, error) {
	return s.List(ctx, &product.QueryProductsModel{RestaurantIds: []int64{restaurantID}})
}

func (s *CatalogService) ListByCategory(ctx context.Context, restaurantID int64, category string) ([]product.Product, error) {
	return s.List(ctx, &product.QueryProductsModel{
		RestaurantIds: []int64{restaurantID},
		Category:      category,
	})
}

// Search matches products by name substring, case-insensitive.
func (s *CatalogService) Search(ctx context.Context, name string) ([]product.Product, error) {
	return s.List(ctx, &product.QueryProductsModel{Name: name})
}

func (s *CatalogService) ListAvailable(ctx context.Context, restaurantID int64) ([]product.Product, error) {
	return s.List(ctx, &product.QueryProductsModel{
		RestaurantIds: []int64{restaurantID},
		AvailableOnly: true,
	})
}

// Create adds a product to the acting restaurant's catalog. The product
// is forced onto the actor's restaurant regardless of the payload.
func (s *CatalogService) Create(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error) {
	if p.PriceCents <= 0 {
		return product.Product{}, ErrInvalidPrice
	}

	p.RestaurantID = actorRestaurantID
	if p.PriceCurrency == "" {
		p.PriceCurrency = currency.CurrencyBRL
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.productRepo.Insert(ctx, p)
	if err != nil {
		return product.Product{}, fmt.Errorf("error inserting product: %w", err)
	}

	return created, nil
}

// Update modifies a product the acting restaurant owns.
func (s *CatalogService) Update(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error) {
	if p.PriceCents <= 0 {
		return product.Product{}, ErrInvalidPrice
	}

	current, err := s.productRepo.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return product.Product{}, err
		}
		return product.Product{}, fmt.Errorf("error getting product: %w", err)
	}
	if current.RestaurantID != actorRestaurantID {
		return product.Product{}, ErrForbidden
	}

	p.RestaurantID = current.RestaurantID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now()
	if p.PriceCurrency == "" {
		p.PriceCurrency = current.PriceCurrency
	}

	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return product.Product{}, fmt.Errorf("error updating product: %w", err)
	}

	return updated, nil
}

// Delete removes a product the acting restaurant owns.
func (s *CatalogService) Delete(ctx context.Context, id, actorRestaurantID int64) error {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return err
		}
		return fmt.Errorf("error getting product: %w", err)
	}
	if current.RestaurantID != actorRestaurantID {
		return ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}

	return nil
}
