package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id            int64     `db:"id"`
	OrderId       int64     `db:"order_id"`
	ProductId     int64     `db:"product_id"`
	Quantity      int       `db:"quantity"`
	ProductTitle  string    `db:"product_title"`
	ProductUrl    string    `db:"product_url"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	Observations  string    `db:"observations"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(oi.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ID:            oi.Id,
		OrderID:       oi.OrderId,
		ProductID:     oi.ProductId,
		Quantity:      oi.Quantity,
		ProductTitle:  oi.ProductTitle,
		ProductUrl:    oi.ProductUrl,
		PriceCents:    oi.PriceCents,
		PriceCurrency: cur,
		Observations:  oi.Observations,
		CreatedAt:     oi.CreatedAt,
		UpdatedAt:     oi.UpdatedAt,
	}, nil
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:            oi.ID,
		OrderId:       oi.OrderID,
		ProductId:     oi.ProductID,
		Quantity:      oi.Quantity,
		ProductTitle:  oi.ProductTitle,
		ProductUrl:    oi.ProductUrl,
		PriceCents:    oi.PriceCents,
		PriceCurrency: oi.PriceCurrency.String(),
		Observations:  oi.Observations,
		CreatedAt:     oi.CreatedAt,
		UpdatedAt:     oi.UpdatedAt,
	}
}

var orderItemColumns = []string{
	"id",
	"order_id",
	"product_id",
	"quantity",
	"product_title",
	"product_url",
	"price_cents",
	"price_currency",
	"observations",
	"created_at",
	"updated_at",
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items and returns them with their IDs.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.Insert("order_items").
		Columns(
			"order_id",
			"product_id",
			"quantity",
			"product_title",
			"product_url",
			"price_cents",
			"price_currency",
			"observations",
			"created_at",
			"updated_at",
		)

	for i := range orderItems {
		dal := OrderItemDalFromModel(&orderItems[i])
		builder = builder.Values(
			dal.OrderId,
			dal.ProductId,
			dal.Quantity,
			dal.ProductTitle,
			dal.ProductUrl,
			dal.PriceCents,
			dal.PriceCurrency,
			dal.Observations,
			dal.CreatedAt,
			dal.UpdatedAt,
		)
	}

	sql, args, err := builder.
		Suffix("RETURNING " + strings.Join(orderItemColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(orderItemColumns...).
		From("order_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		query = query.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// ReplaceForOrder swaps the full item list of an order. Used by the edit
// flow, which resubmits every item.
func (r *PostgresOrderItemRepository) ReplaceForOrder(
	ctx context.Context,
	orderID int64,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if err := r.DeleteByOrder(ctx, orderID); err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = orderID
	}

	return r.BulkInsert(ctx, orderItems)
}

// DeleteByOrder removes every item of an order.
func (r *PostgresOrderItemRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	sql, args, err := r.sb.Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrderItems(rows rowScanner) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.ProductTitle,
			&dal.ProductUrl,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.Observations,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
