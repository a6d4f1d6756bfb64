package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id                 int64     `db:"id"`
	ClientId           int64     `db:"client_id"`
	RestaurantId       int64     `db:"restaurant_id"`
	Status             string    `db:"status"`
	TotalPriceCents    int64     `db:"total_price_cents"`
	TotalPriceCurrency string    `db:"total_price_currency"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}
	st, err := status.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                 o.Id,
		ClientID:           o.ClientId,
		RestaurantID:       o.RestaurantId,
		Status:             st,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		OrderItems:         []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                 o.ID,
		ClientId:           o.ClientID,
		RestaurantId:       o.RestaurantID,
		Status:             o.Status.String(),
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: o.TotalPriceCurrency.String(),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

var orderColumns = []string{
	"id",
	"client_id",
	"restaurant_id",
	"status",
	"total_price_cents",
	"total_price_currency",
	"created_at",
	"updated_at",
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.ClientId,
		&dal.RestaurantId,
		&dal.Status,
		&dal.TotalPriceCents,
		&dal.TotalPriceCurrency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new order and returns it with its assigned id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	query, args, err := sq.Insert("orders").
		Columns(
			"client_id",
			"restaurant_id",
			"status",
			"total_price_cents",
			"total_price_currency",
			"created_at",
			"updated_at",
		).
		Values(
			dal.ClientId,
			dal.RestaurantId,
			dal.Status,
			dal.TotalPriceCents,
			dal.TotalPriceCurrency,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	inserted.OrderItems = o.OrderItems

	return *inserted, nil
}

// GetByID retrieves a single order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iorderrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.ClientIds) > 0 {
		builder = builder.Where(sq.Eq{"client_id": filter.ClientIds})
	}
	if len(filter.RestaurantIds) > 0 {
		builder = builder.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}

	if filter.SortDesc {
		builder = builder.OrderBy("id DESC")
	} else {
		builder = builder.OrderBy("id ASC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.ClientId,
			&dal.RestaurantId,
			&dal.Status,
			&dal.TotalPriceCents,
			&dal.TotalPriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update persists status, total and updated_at of an existing order.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	query, args, err := sq.Update("orders").
		Set("status", dal.Status).
		Set("total_price_cents", dal.TotalPriceCents).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, iorderrepo.ErrNotFound
		}

		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	updated.OrderItems = o.OrderItems

	return *updated, nil
}

// Delete removes an order row. Items are removed by their own repository.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return iorderrepo.ErrNotFound
	}

	return nil
}
