package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ihistoryrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ioutboxrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/uow"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/event"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/outbox"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

var (
	// ErrEmptyOrder means the order has no items.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidQuantity means an item carries a non-positive quantity.
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	// ErrOrderClosed means the order is in a terminal status and cannot change.
	ErrOrderClosed = errors.New("order is finished or canceled")
	// ErrInvalidTransition means the requested status change breaks the
	// forward-only progression.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrForbidden means the acting restaurant does not own the order.
	ErrForbidden = errors.New("order belongs to another restaurant")
)

// UnitOfWork is what the service needs from the DAL transaction scope.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
	HistoryRepository() ihistoryrepo.IHistoryRepository
}

// OrderService is a service for managing the order lifecycle.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() UnitOfWork

	// allowStatusOverride disables transition validation so an operator can
	// move a non-terminal order to any status. Off by default.
	allowStatusOverride bool
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		allowStatusOverride: viper.GetBool("orders.allow_status_override"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client is required")
		}
		s.newUOW = func() UnitOfWork { return uow.NewUnitOfWork(s.pgClient) }
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides how transaction scopes are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() UnitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = f
	}
}

// WithStatusOverride toggles free status editing.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStatusOverride(allow bool) option {
	return func(s *OrderService) {
		s.allowStatusOverride = allow
	}
}

// CreateOrderCommand describes a new order submission.
type CreateOrderCommand struct {
	ClientID     int64
	RestaurantID int64
	Items        []orderitem.OrderItem
}

// Create inserts the order, its items, the first history entry and the
// order.created outbox event in one transaction. Status is always CREATED and
// the total is recomputed server-side from the submitted items.
func (s *OrderService) Create(ctx context.Context, cmd CreateOrderCommand) (order.Order, error) {
	if len(cmd.Items) == 0 {
		return order.Order{}, ErrEmptyOrder
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return order.Order{}, ErrInvalidQuantity
		}
	}

	now := time.Now()
	o := order.Order{
		ClientID:           cmd.ClientID,
		RestaurantID:       cmd.RestaurantID,
		Status:             status.StatusCreated,
		TotalPriceCents:    order.TotalOf(cmd.Items),
		TotalPriceCurrency: currency.CurrencyBRL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer s.rollback(ctx, work)

	inserted, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, len(cmd.Items))
	for i, item := range cmd.Items {
		item.OrderID = inserted.ID
		item.CreatedAt = now
		item.UpdatedAt = now
		items[i] = item
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}
	inserted.OrderItems = items

	err = work.HistoryRepository().Insert(ctx, history.StatusChange{
		OrderID:   inserted.ID,
		Status:    status.StatusCreated,
		ChangedBy: cmd.ClientID,
		ChangedAt: now,
	})
	if err != nil {
		return order.Order{}, err
	}

	if err := s.stageEvent(ctx, work, event.TypeOrderCreated, inserted); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return inserted, nil
}

// GetByID retrieves one order with its items.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{id},
	})
	if err != nil {
		return nil, err
	}
	o.OrderItems = items

	return o, nil
}

// List retrieves orders with their items based on filter.
func (s *OrderService) List(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// ListByClient retrieves a client's orders, optionally narrowed to one status.
func (s *OrderService) ListByClient(
	ctx context.Context,
	clientID int64,
	st *status.Status,
) ([]order.Order, error) {
	filter := order.QueryOrdersModel{ClientIds: []int64{clientID}}
	if st != nil {
		filter.Statuses = []status.Status{*st}
	}

	return s.List(ctx, filter)
}

// ListByRestaurant retrieves a restaurant's orders newest first, optionally
// narrowed to one status.
func (s *OrderService) ListByRestaurant(
	ctx context.Context,
	restaurantID int64,
	st *status.Status,
) ([]order.Order, error) {
	filter := order.QueryOrdersModel{
		RestaurantIds: []int64{restaurantID},
		SortDesc:      true,
	}
	if st != nil {
		filter.Statuses = []status.Status{*st}
	}

	return s.List(ctx, filter)
}

// ListByStatus retrieves all orders currently in the given status.
func (s *OrderService) ListByStatus(ctx context.Context, st status.Status) ([]order.Order, error) {
	return s.List(ctx, order.QueryOrdersModel{Statuses: []status.Status{st}})
}

// UpdateOrderCommand describes an order edit from the restaurant side.
type UpdateOrderCommand struct {
	OrderID int64
	Status  status.Status
	// Items, when non-nil, replaces the full item list. Lines with
	// non-positive quantity are dropped.
	Items []orderitem.OrderItem
	// ActorID goes into the status trail.
	ActorID int64
	// ActorRestaurantID, when non-zero, must match the order's restaurant.
	ActorRestaurantID int64
}

// Update applies a status change and an optional item resubmission. Terminal
// orders are immutable. Unless the service runs with status override enabled,
// the new status must be one legal step from the current one.
func (s *OrderService) Update(ctx context.Context, cmd UpdateOrderCommand) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer s.rollback(ctx, work)

	current, err := work.OrderRepository().GetByID(ctx, cmd.OrderID)
	if err != nil {
		return order.Order{}, err
	}

	if cmd.ActorRestaurantID != 0 && current.RestaurantID != cmd.ActorRestaurantID {
		return order.Order{}, ErrForbidden
	}
	if current.Status.IsTerminal() {
		return order.Order{}, ErrOrderClosed
	}

	statusChanged := cmd.Status != current.Status
	if statusChanged && !s.allowStatusOverride && !current.Status.CanTransition(cmd.Status) {
		return order.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, cmd.Status)
	}

	now := time.Now()

	var items []orderitem.OrderItem
	if cmd.Items != nil {
		kept := make([]orderitem.OrderItem, 0, len(cmd.Items))
		for _, item := range cmd.Items {
			if item.Quantity <= 0 {
				continue
			}
			item.CreatedAt = now
			item.UpdatedAt = now
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			return order.Order{}, ErrEmptyOrder
		}

		items, err = work.OrderItemRepository().ReplaceForOrder(ctx, current.ID, kept)
		if err != nil {
			return order.Order{}, err
		}
	} else {
		items, err = work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
			OrderIds: []int64{current.ID},
		})
		if err != nil {
			return order.Order{}, err
		}
	}

	current.Status = cmd.Status
	current.TotalPriceCents = order.TotalOf(items)
	current.UpdatedAt = now

	updated, err := work.OrderRepository().Update(ctx, *current)
	if err != nil {
		return order.Order{}, err
	}
	updated.OrderItems = items

	if statusChanged {
		err = work.HistoryRepository().Insert(ctx, history.StatusChange{
			OrderID:   updated.ID,
			Status:    updated.Status,
			ChangedBy: cmd.ActorID,
			ChangedAt: now,
		})
		if err != nil {
			return order.Order{}, err
		}

		eventType := event.TypeOrderStatusChanged
		if updated.Status == status.StatusCanceled {
			eventType = event.TypeOrderCanceled
		}
		if err := s.stageEvent(ctx, work, eventType, updated); err != nil {
			return order.Order{}, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return updated, nil
}

// CancelOrderCommand identifies the order to cancel and who asked.
type CancelOrderCommand struct {
	OrderID           int64
	ActorID           int64
	ActorRestaurantID int64
}

// Cancel moves a non-terminal order to CANCELED.
func (s *OrderService) Cancel(ctx context.Context, cmd CancelOrderCommand) (order.Order, error) {
	return s.Update(ctx, UpdateOrderCommand{
		OrderID:           cmd.OrderID,
		Status:            status.StatusCanceled,
		ActorID:           cmd.ActorID,
		ActorRestaurantID: cmd.ActorRestaurantID,
	})
}

// Delete removes an order and its items entirely. Legacy destructive path,
// superseded by Cancel but still exposed.
func (s *OrderService) Delete(ctx context.Context, id, actorRestaurantID int64) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer s.rollback(ctx, work)

	current, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorRestaurantID != 0 && current.RestaurantID != actorRestaurantID {
		return ErrForbidden
	}

	if err := work.OrderItemRepository().DeleteByOrder(ctx, id); err != nil {
		return err
	}
	if err := work.HistoryRepository().DeleteByOrder(ctx, id); err != nil {
		return err
	}
	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.stageEvent(ctx, work, event.TypeOrderDeleted, *current); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// History returns the status trail of one order.
func (s *OrderService) History(ctx context.Context, orderID int64) ([]history.StatusChange, error) {
	work := s.newUOW()

	if _, err := work.OrderRepository().GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	return work.HistoryRepository().ListByOrder(ctx, orderID)
}

// stageEvent writes an order event into the outbox within the current
// transaction. The outbox worker delivers it to RabbitMQ later.
func (s *OrderService) stageEvent(
	ctx context.Context,
	work UnitOfWork,
	eventType event.Type,
	o order.Order,
) error {
	payload, err := json.Marshal(event.OrderEvent{
		Type:         eventType,
		OrderID:      o.ID,
		ClientID:     o.ClientID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		OccurredAt:   o.UpdatedAt,
	})
	if err != nil {
		return err
	}

	queueName := viper.GetString("rabbitmq.orders_queue")
	if queueName == "" {
		queueName = "garcon.order.events"
	}
	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := time.Now()

	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

func (s *OrderService) rollback(ctx context.Context, work UnitOfWork) {
	if err := work.Rollback(ctx); err != nil {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}
