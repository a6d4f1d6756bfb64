package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/isessionrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

// SessionDal represents session data access layer model.
type SessionDal struct {
	Token        string    `db:"token"`
	UserId       int64     `db:"user_id"`
	Role         string    `db:"role"`
	RestaurantId int64     `db:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// ToModel converts SessionDal to service layer Session model.
func (s *SessionDal) ToModel() (*session.Session, error) {
	role, err := user.ParseRole(s.Role)
	if err != nil {
		return nil, err
	}

	return &session.Session{
		Token:        s.Token,
		UserID:       s.UserId,
		Role:         role,
		RestaurantID: s.RestaurantId,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	}, nil
}

// PostgresSessionRepository represents a Postgres session repository.
type PostgresSessionRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresSessionRepository creates a new Postgres session repository.
func NewPostgresSessionRepository(conn postgres.Querier) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores an issued session.
func (r *PostgresSessionRepository) Insert(ctx context.Context, s session.Session) error {
	query, args, err := r.sb.Insert("sessions").
		Columns("token", "user_id", "role", "restaurant_id", "created_at", "expires_at").
		Values(s.Token, s.UserID, s.Role.String(), s.RestaurantID, s.CreatedAt, s.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetByToken resolves a bearer token.
func (r *PostgresSessionRepository) GetByToken(
	ctx context.Context,
	token string,
) (*session.Session, error) {
	query, args, err := r.sb.
		Select("token", "user_id", "role", "restaurant_id", "created_at", "expires_at").
		From("sessions").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal SessionDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Token,
		&dal.UserId,
		&dal.Role,
		&dal.RestaurantId,
		&dal.CreatedAt,
		&dal.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, isessionrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return dal.ToModel()
}

// Delete revokes a session.
func (r *PostgresSessionRepository) Delete(ctx context.Context, token string) error {
	query, args, err := r.sb.Delete("sessions").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes sessions past their expiry and reports how many.
func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Delete("sessions").
		Where(sq.LtOrEq{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
