package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
)

// PostgresHistoryRepository stores the order status audit trail.
type PostgresHistoryRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresHistoryRepository creates a new Postgres history repository.
func NewPostgresHistoryRepository(conn postgres.Querier) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert appends one status change to the trail.
func (r *PostgresHistoryRepository) Insert(ctx context.Context, change history.StatusChange) error {
	query, args, err := r.sb.Insert("order_status_history").
		Columns("order_id", "status", "changed_by", "notes", "changed_at").
		Values(change.OrderID, change.Status.String(), change.ChangedBy, change.Notes, change.ChangedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert status change: %w", err)
	}

	return nil
}

// DeleteByOrder removes the whole trail of an order.
func (r *PostgresHistoryRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	query, args, err := r.sb.Delete("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete status history: %w", err)
	}

	return nil
}

// ListByOrder returns the trail of one order in chronological order.
func (r *PostgresHistoryRepository) ListByOrder(
	ctx context.Context,
	orderID int64,
) ([]history.StatusChange, error) {
	query, args, err := r.sb.
		Select("id", "order_id", "status", "changed_by", "notes", "changed_at").
		From("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var result []history.StatusChange
	for rows.Next() {
		var (
			entry     history.StatusChange
			rawStatus string
			changedAt time.Time
		)
		err := rows.Scan(&entry.ID, &entry.OrderID, &rawStatus, &entry.ChangedBy, &entry.Notes, &changedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}

		st, err := status.ParseStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored status: %w", err)
		}
		entry.Status = st
		entry.ChangedAt = changedAt

		result = append(result, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
