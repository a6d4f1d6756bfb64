package cartsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/icartrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
)

var (
	ErrRestaurantConflict = errors.New("cart already holds items from another restaurant")
	ErrProductNotInCart   = errors.New("product is not in the cart")
	ErrProductUnavailable = errors.New("product is not available")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// OrderCreator is the slice of the order service checkout needs.
type OrderCreator interface {
	Create(ctx context.Context, cmd ordersvc.CreateOrderCommand) (order.Order, error)
}

type CartService struct {
	cartRepo    icartrepo.ICartRepository
	productRepo iproductrepo.IProductRepository
	orders      OrderCreator
}

type option func(*CartService)

func WithCartRepository(repo icartrepo.ICartRepository) option {
	return func(s *CartService) {
		s.cartRepo = repo
	}
}

func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CartService) {
		s.productRepo = repo
	}
}

func WithOrderService(orders OrderCreator) option {
	return func(s *CartService) {
		s.orders = orders
	}
}

func MustNewCartService(opts ...option) *CartService {
	service := &CartService{}
	for _, opt := range opts {
		opt(service)
	}

	if service.cartRepo == nil {
		panic("cart service requires a cart repository")
	}
	if service.productRepo == nil {
		panic("cart service requires a product repository")
	}

	return service
}

// Get returns the client's cart. A client with no saved cart gets an
// empty, unbound one.
func (s *CartService) Get(ctx context.Context, clientID int64) (cart.Cart, error) {
	c, err := s.cartRepo.Get(ctx, clientID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("error getting cart: %w", err)
	}

	return *c, nil
}

// AddProduct puts quantity units of the product into the cart,
// snapshotting its title and price. Adding a product from a different
// restaurant than the cart is bound to fails with ErrRestaurantConflict
// and leaves the cart untouched.
func (s *CartService) AddProduct(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error) {
	if quantity <= 0 {
		return cart.Cart{}, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, iproductrepo.ErrNotFound) {
			return cart.Cart{}, err
		}
		return cart.Cart{}, fmt.Errorf("error getting product: %w", err)
	}
	if !product.Available {
		return cart.Cart{}, ErrProductUnavailable
	}

	c, err := s.cartRepo.Get(ctx, clientID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("error getting cart: %w", err)
	}

	if !c.IsEmpty() && c.RestaurantID != product.RestaurantID {
		return cart.Cart{}, ErrRestaurantConflict
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, cart.CartItem{
			ProductID:     product.ID,
			Quantity:      quantity,
			ProductTitle:  product.Name,
			ProductUrl:    product.ImageURL,
			PriceCents:    product.PriceCents,
			PriceCurrency: product.PriceCurrency,
		})
	}

	c.ClientID = clientID
	c.RestaurantID = product.RestaurantID
	c.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return cart.Cart{}, fmt.Errorf("error saving cart: %w", err)
	}

	return *c, nil
}

// UpdateQuantity sets the line quantity for a product already in the
// cart. A quantity of zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error) {
	if quantity <= 0 {
		return s.RemoveProduct(ctx, clientID, productID)
	}

	c, err := s.cartRepo.Get(ctx, clientID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("error getting cart: %w", err)
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return cart.Cart{}, ErrProductNotInCart
	}

	c.UpdatedAt = time.Now()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return cart.Cart{}, fmt.Errorf("error saving cart: %w", err)
	}

	return *c, nil
}

// RemoveProduct drops the product's line entirely. Removing the last
// line unbinds the cart from its restaurant. Removing a product that is
// not in the cart is a no-op, so removal is safe to repeat.
func (s *CartService) RemoveProduct(ctx context.Context, clientID, productID int64) (cart.Cart, error) {
	c, err := s.cartRepo.Get(ctx, clientID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("error getting cart: %w", err)
	}

	items := c.Items[:0]
	found := false
	for _, item := range c.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return *c, nil
	}

	c.Items = items
	if len(c.Items) == 0 {
		c.RestaurantID = 0
	}
	c.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return cart.Cart{}, fmt.Errorf("error saving cart: %w", err)
	}

	return *c, nil
}

// Clear empties the cart and unbinds it from its restaurant.
func (s *CartService) Clear(ctx context.Context, clientID int64) error {
	if err := s.cartRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}

	return nil
}

// Checkout turns the cart into an order. The observations string is
// applied to every line of the resulting order. The cart is cleared
// only after the order has been created, so a failed submission keeps
// the cart intact.
func (s *CartService) Checkout(ctx context.Context, clientID int64, observations string) (order.Order, error) {
	if s.orders == nil {
		return order.Order{}, errors.New("cart service has no order service wired")
	}

	c, err := s.cartRepo.Get(ctx, clientID)
	if err != nil {
		return order.Order{}, fmt.Errorf("error getting cart: %w", err)
	}
	if c.IsEmpty() {
		return order.Order{}, ErrEmptyCart
	}

	items := make([]orderitem.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, orderitem.OrderItem{
			ProductID:     line.ProductID,
			ProductTitle:  line.ProductTitle,
			ProductUrl:    line.ProductUrl,
			Quantity:      line.Quantity,
			PriceCents:    line.PriceCents,
			PriceCurrency: line.PriceCurrency,
			Observations:  observations,
		})
	}

	created, err := s.orders.Create(ctx, ordersvc.CreateOrderCommand{
		ClientID:     clientID,
		RestaurantID: c.RestaurantID,
		Items:        items,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("error creating order from cart: %w", err)
	}

	if err := s.cartRepo.Delete(ctx, clientID); err != nil {
		return created, fmt.Errorf("order %d created but cart not cleared: %w", created.ID, err)
	}

	return created, nil
}
