package catalogsvc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
)

type fakeProductRepo struct {
	products map[int64]product.Product
	nextID   int64
}

func (f *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = p

	return p, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, iproductrepo.ErrNotFound
	}

	return &p, nil
}

func (f *fakeProductRepo) Query(_ context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	var out []product.Product
	for _, p := range f.products {
		if len(filter.RestaurantIds) > 0 && filter.RestaurantIds[0] != p.RestaurantID {
			continue
		}
		if filter.Category != "" && filter.Category != p.Category {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.AvailableOnly && !p.Available {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	if _, ok := f.products[p.ID]; !ok {
		return product.Product{}, iproductrepo.ErrNotFound
	}
	f.products[p.ID] = p

	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return iproductrepo.ErrNotFound
	}
	delete(f.products, id)

	return nil
}

func newTestService() (*CatalogService, *fakeProductRepo) {
	repo := &fakeProductRepo{products: make(map[int64]product.Product)}

	return MustNewCatalogService(WithProductRepository(repo)), repo
}

func TestCreateForcesOwnership(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), product.Product{
		Name:         "X-Burger",
		Category:     "burgers",
		PriceCents:   3590,
		RestaurantID: 99,
		Available:    true,
	}, 10)
	require.NoError(t, err)

	// The payload's restaurant id is ignored in favor of the actor's.
	assert.Equal(t, int64(10), created.RestaurantID)
	assert.Equal(t, currency.CurrencyBRL, created.PriceCurrency)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), product.Product{Name: "Free lunch", Category: "x"}, 10)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, product.Product{Name: "X-Burger", Category: "burgers", PriceCents: 3590}, 10)
	require.NoError(t, err)

	created.PriceCents = 3990
	_, err = svc.Update(ctx, created, 20)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, created, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3990), updated.PriceCents)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, product.Product{Name: "X-Burger", Category: "burgers", PriceCents: 3590}, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, 20), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, created.ID, 10))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, iproductrepo.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, product.Product{Name: "X-Burger", Category: "burgers", PriceCents: 3590, Available: true}, 10)
	require.NoError(t, err)
	_, err = svc.Create(ctx, product.Product{Name: "Sushi", Category: "japanese", PriceCents: 2400, Available: true}, 20)
	require.NoError(t, err)
	_, err = svc.Create(ctx, product.Product{Name: "Old Fries", Category: "burgers", PriceCents: 1200}, 10)
	require.NoError(t, err)

	byRestaurant, err := svc.ListByRestaurant(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 2)

	byCategory, err := svc.ListByCategory(ctx, 20, "japanese")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	// The category listing is scoped to one restaurant.
	byCategory, err = svc.ListByCategory(ctx, 10, "japanese")
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	available, err := svc.ListAvailable(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	found, err := svc.Search(ctx, "burger")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "X-Burger", found[0].Name)
}
