package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ihistoryrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/ioutboxrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	historyrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/history/postgres"
	orderrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/outbox/postgres"
)

// unitOfWork scopes the order, order item, outbox and history repositories to
// one transaction. Before Begin the repositories run on the pool directly.
type unitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
	historyRepo   ihistoryrepo.IHistoryRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
	u.historyRepo = historyrepo.NewPostgresHistoryRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) HistoryRepository() ihistoryrepo.IHistoryRepository {
	return u.historyRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}

	return nil
}
