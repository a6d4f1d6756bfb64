package ordersvc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ihistoryrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ioutboxrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/event"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/outbox"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// fakeStore backs the fake repositories with shared in-memory state. A
// unit of work commits by keeping the state and rolls back by restoring
// the snapshot taken at Begin.
type fakeStore struct {
	orders  map[int64]order.Order
	items   map[int64][]orderitem.OrderItem
	trail   []history.StatusChange
	events  []outbox.OutboxMessage
	nextID  int64
	nextItm int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders: make(map[int64]order.Order),
		items:  make(map[int64][]orderitem.OrderItem),
	}
}

type fakeUOW struct {
	store    *fakeStore
	snapshot *fakeStore
	began    bool
}

func (u *fakeUOW) Begin(context.Context) error {
	snap := newFakeStore()
	for k, v := range u.store.orders {
		snap.orders[k] = v
	}
	for k, v := range u.store.items {
		snap.items[k] = append([]orderitem.OrderItem(nil), v...)
	}
	snap.trail = append([]history.StatusChange(nil), u.store.trail...)
	snap.events = append([]outbox.OutboxMessage(nil), u.store.events...)
	snap.nextID = u.store.nextID
	snap.nextItm = u.store.nextItm

	u.snapshot = snap
	u.began = true

	return nil
}

func (u *fakeUOW) Commit(context.Context) error {
	u.snapshot = nil
	u.began = false

	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	if u.began && u.snapshot != nil {
		*u.store = *u.snapshot
	}
	u.began = false

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &fakeOrderRepo{u.store}
}

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &fakeItemRepo{u.store}
}

func (u *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &fakeOutboxRepo{u.store}
}

func (u *fakeUOW) HistoryRepository() ihistoryrepo.IHistoryRepository {
	return &fakeHistoryRepo{u.store}
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	r.s.nextID++
	o.ID = r.s.nextID
	r.s.orders[o.ID] = o

	return o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, iorderrepo.ErrNotFound
	}

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.s.orders {
		if len(filter.ClientIds) > 0 && filter.ClientIds[0] != o.ClientID {
			continue
		}
		if len(filter.RestaurantIds) > 0 && filter.RestaurantIds[0] != o.RestaurantID {
			continue
		}
		if len(filter.Statuses) > 0 && filter.Statuses[0] != o.Status {
			continue
		}
		out = append(out, o)
	}

	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o order.Order) (order.Order, error) {
	if _, ok := r.s.orders[o.ID]; !ok {
		return order.Order{}, iorderrepo.ErrNotFound
	}
	r.s.orders[o.ID] = o

	return o, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.orders[id]; !ok {
		return iorderrepo.ErrNotFound
	}
	delete(r.s.orders, id)

	return nil
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	out := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		r.s.nextItm++
		item.ID = r.s.nextItm
		r.s.items[item.OrderID] = append(r.s.items[item.OrderID], item)
		out[i] = item
	}

	return out, nil
}

func (r *fakeItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	var out []orderitem.OrderItem
	for _, orderID := range filter.OrderIds {
		out = append(out, r.s.items[orderID]...)
	}

	return out, nil
}

func (r *fakeItemRepo) ReplaceForOrder(ctx context.Context, orderID int64, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	delete(r.s.items, orderID)
	for i := range items {
		items[i].OrderID = orderID
	}

	return r.BulkInsert(ctx, items)
}

func (r *fakeItemRepo) DeleteByOrder(_ context.Context, orderID int64) error {
	delete(r.s.items, orderID)

	return nil
}

type fakeHistoryRepo struct{ s *fakeStore }

func (r *fakeHistoryRepo) Insert(_ context.Context, change history.StatusChange) error {
	change.ID = int64(len(r.s.trail) + 1)
	r.s.trail = append(r.s.trail, change)

	return nil
}

func (r *fakeHistoryRepo) ListByOrder(_ context.Context, orderID int64) ([]history.StatusChange, error) {
	var out []history.StatusChange
	for _, change := range r.s.trail {
		if change.OrderID == orderID {
			out = append(out, change)
		}
	}

	return out, nil
}

func (r *fakeHistoryRepo) DeleteByOrder(_ context.Context, orderID int64) error {
	kept := r.s.trail[:0]
	for _, change := range r.s.trail {
		if change.OrderID != orderID {
			kept = append(kept, change)
		}
	}
	r.s.trail = kept

	return nil
}

type fakeOutboxRepo struct{ s *fakeStore }

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	msg.ID = int64(len(r.s.events) + 1)
	r.s.events = append(r.s.events, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.OutboxMessage, error) {
	return append([]outbox.OutboxMessage(nil), r.s.events...), nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	kept := r.s.events[:0]
	for _, msg := range r.s.events {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	r.s.events = kept

	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func newTestService(store *fakeStore, opts ...option) *OrderService {
	opts = append(opts, WithUnitOfWorkFactory(func() UnitOfWork {
		return &fakeUOW{store: store}
	}))

	return MustNewOrderService(opts...)
}

func testItems() []orderitem.OrderItem {
	return []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, ProductTitle: "X-Burger", PriceCents: 3590, PriceCurrency: currency.CurrencyBRL},
		{ProductID: 2, Quantity: 2, ProductTitle: "Fries", PriceCents: 1200, PriceCurrency: currency.CurrencyBRL},
	}
}

func TestCreateComputesTotalAndStagesEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{
		ClientID:     7,
		RestaurantID: 10,
		Items:        testItems(),
	})
	require.NoError(t, err)

	assert.Equal(t, status.StatusCreated, created.Status)
	assert.Equal(t, int64(5990), created.TotalPriceCents)
	assert.Equal(t, currency.CurrencyBRL, created.TotalPriceCurrency)
	require.Len(t, created.OrderItems, 2)

	require.Len(t, store.trail, 1)
	assert.Equal(t, status.StatusCreated, store.trail[0].Status)

	require.Len(t, store.events, 1)
	var evt event.OrderEvent
	require.NoError(t, json.Unmarshal(store.events[0].Payload, &evt))
	assert.Equal(t, event.TypeOrderCreated, evt.Type)
	assert.Equal(t, created.ID, evt.OrderID)
}

func TestCreateRejectsEmptyAndInvalid(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	items := testItems()
	items[0].Quantity = 0
	_, err = svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: items})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateWalksTheProgression(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	for _, next := range []status.Status{status.StatusConfirmed, status.StatusPreparing, status.StatusFinished} {
		updated, err := svc.Update(ctx, UpdateOrderCommand{
			OrderID: created.ID,
			Status:  next,
			ActorID: 100,
		})
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	trail, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	assert.Equal(t, status.StatusFinished, trail[3].Status)
}

func TestUpdateRejectsSkippedStep(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateOrderCommand{OrderID: created.ID, Status: status.StatusFinished})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The failed update must leave the order untouched.
	current, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, status.StatusCreated, current.Status)
}

func TestUpdateWithOverrideSkipsValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, WithStatusOverride(true))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateOrderCommand{OrderID: created.ID, Status: status.StatusFinished})
	require.NoError(t, err)
	assert.Equal(t, status.StatusFinished, updated.Status)
}

func TestTerminalOrdersAreImmutable(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, CancelOrderCommand{OrderID: created.ID, ActorID: 7})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateOrderCommand{OrderID: created.ID, Status: status.StatusConfirmed})
	assert.ErrorIs(t, err, ErrOrderClosed)

	_, err = svc.Cancel(ctx, CancelOrderCommand{OrderID: created.ID, ActorID: 7})
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestCancelStagesCancelEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	canceled, err := svc.Cancel(ctx, CancelOrderCommand{OrderID: created.ID, ActorID: 7})
	require.NoError(t, err)
	assert.Equal(t, status.StatusCanceled, canceled.Status)

	require.Len(t, store.events, 2)
	var evt event.OrderEvent
	require.NoError(t, json.Unmarshal(store.events[1].Payload, &evt))
	assert.Equal(t, event.TypeOrderCanceled, evt.Type)
}

func TestUpdateEnforcesRestaurantOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateOrderCommand{
		OrderID:           created.ID,
		Status:            status.StatusConfirmed,
		ActorRestaurantID: 99,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateReplacesItemsAndRecomputesTotal(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateOrderCommand{
		OrderID: created.ID,
		Status:  status.StatusConfirmed,
		Items: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 2, ProductTitle: "X-Burger", PriceCents: 3590, PriceCurrency: currency.CurrencyBRL},
			{ProductID: 2, Quantity: 0, ProductTitle: "Fries", PriceCents: 1200, PriceCurrency: currency.CurrencyBRL},
		},
	})
	require.NoError(t, err)

	// The zero-quantity line is dropped and the total recomputed.
	require.Len(t, updated.OrderItems, 1)
	assert.Equal(t, int64(7180), updated.TotalPriceCents)
}

func TestUpdateAllLinesDropped(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateOrderCommand{
		OrderID: created.ID,
		Status:  status.StatusConfirmed,
		Items: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 0, ProductTitle: "X-Burger", PriceCents: 3590, PriceCurrency: currency.CurrencyBRL},
		},
	})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestListByRestaurantNewestFirstFlag(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateOrderCommand{ClientID: 8, RestaurantID: 20, Items: testItems()})
	require.NoError(t, err)

	orders, err := svc.ListByRestaurant(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].ClientID)
	require.Len(t, orders[0].OrderItems, 2)
}

func TestDeleteRemovesOrderAndStagesEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderCommand{ClientID: 7, RestaurantID: 10, Items: testItems()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, 10))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, iorderrepo.ErrNotFound)

	// The audit trail references the order row, so it must go in the same
	// transaction or the order delete is blocked by the foreign key.
	assert.Empty(t, store.trail)
	assert.NotContains(t, store.items, created.ID)

	var evt event.OrderEvent
	require.NoError(t, json.Unmarshal(store.events[len(store.events)-1].Payload, &evt))
	assert.Equal(t, event.TypeOrderDeleted, evt.Type)
}
