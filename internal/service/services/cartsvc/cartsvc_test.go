package cartsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	memoryrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/cart/memory"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
)

type fakeProductRepo struct {
	products map[int64]product.Product
}

func (f *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
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

func (f *fakeProductRepo) Query(_ context.Context, _ *product.QueryProductsModel) ([]product.Product, error) {
	out := make([]product.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}

	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	f.products[p.ID] = p

	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(f.products, id)

	return nil
}

type fakeOrderCreator struct {
	created []ordersvc.CreateOrderCommand
	err     error
}

func (f *fakeOrderCreator) Create(_ context.Context, cmd ordersvc.CreateOrderCommand) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	f.created = append(f.created, cmd)

	return order.Order{
		ID:              1,
		ClientID:        cmd.ClientID,
		RestaurantID:    cmd.RestaurantID,
		Status:          status.StatusCreated,
		TotalPriceCents: order.TotalOf(cmd.Items),
		OrderItems:      cmd.Items,
	}, nil
}

func newTestService(orders OrderCreator) *CartService {
	repo := &fakeProductRepo{products: map[int64]product.Product{
		1: {ID: 1, Name: "X-Burger", ImageURL: "http://img/x.png", PriceCents: 3590, PriceCurrency: currency.CurrencyBRL, RestaurantID: 10, Available: true},
		2: {ID: 2, Name: "Fries", PriceCents: 1200, PriceCurrency: currency.CurrencyBRL, RestaurantID: 10, Available: true},
		3: {ID: 3, Name: "Sushi", PriceCents: 2400, PriceCurrency: currency.CurrencyBRL, RestaurantID: 20, Available: true},
		4: {ID: 4, Name: "Sold Out", PriceCents: 900, PriceCurrency: currency.CurrencyBRL, RestaurantID: 10, Available: false},
	}}

	opts := []option{
		WithCartRepository(memoryrepo.NewMemoryCartRepository()),
		WithProductRepository(repo),
	}
	if orders != nil {
		opts = append(opts, WithOrderService(orders))
	}

	return MustNewCartService(opts...)
}

func TestAddProductSnapshotsAndBinds(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	c, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(10), c.RestaurantID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "X-Burger", c.Items[0].ProductTitle)
	assert.Equal(t, int64(3590), c.Items[0].PriceCents)

	// Adding the same product again accumulates quantity on one line.
	c, err = svc.AddProduct(ctx, 7, 1, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddProductRestaurantConflict(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, 7, 3, 1)
	assert.ErrorIs(t, err, ErrRestaurantConflict)

	// The conflicting add must not touch the cart.
	c, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(1), c.Items[0].ProductID)
	assert.Equal(t, int64(10), c.RestaurantID)
}

func TestAddProductUnavailable(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.AddProduct(context.Background(), 7, 4, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestAddProductUnknown(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.AddProduct(context.Background(), 7, 99, 1)
	assert.ErrorIs(t, err, iproductrepo.ErrNotFound)
}

func TestAddProductInvalidQuantity(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.AddProduct(context.Background(), 7, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRemoveLastProductUnbindsCart(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	c, err := svc.RemoveProduct(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.RestaurantID)

	// An unbound cart accepts any restaurant again.
	c, err = svc.AddProduct(ctx, 7, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), c.RestaurantID)
}

func TestRemoveProductIsIdempotent(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	// Removing a product that is not in the cart leaves it untouched.
	c, err := svc.RemoveProduct(ctx, 7, 2)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	// A repeated removal of the same line is a no-op as well.
	c, err = svc.RemoveProduct(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	c, err = svc.RemoveProduct(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// Quantity zero delegates to removal and shares its idempotency.
	c, err = svc.UpdateQuantity(ctx, 7, 1, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, 7, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Quantity)

	// Zero quantity removes the line.
	c, err = svc.UpdateQuantity(ctx, 7, 1, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckout(t *testing.T) {
	creator := &fakeOrderCreator{}
	svc := newTestService(creator)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, 7, 2, 2)
	require.NoError(t, err)

	created, err := svc.Checkout(ctx, 7, "no onions")
	require.NoError(t, err)

	assert.Equal(t, int64(5990), created.TotalPriceCents)
	require.Len(t, creator.created, 1)
	for _, item := range creator.created[0].Items {
		assert.Equal(t, "no onions", item.Observations)
	}

	// The cart is cleared after a successful checkout.
	c, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(&fakeOrderCreator{})

	_, err := svc.Checkout(context.Background(), 7, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	creator := &fakeOrderCreator{err: errors.New("broker down")}
	svc := newTestService(creator)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, 7, 1, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, 7, "")
	require.Error(t, err)

	c, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}
