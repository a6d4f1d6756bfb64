package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iuserrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
)

// UserDal represents user data access layer model.
type UserDal struct {
	Id           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	RestaurantId int64     `db:"restaurant_id"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToModel converts UserDal to service layer User model.
func (u *UserDal) ToModel() (*user.User, error) {
	role, err := user.ParseRole(u.Role)
	if err != nil {
		return nil, err
	}

	return &user.User{
		ID:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         role,
		RestaurantID: u.RestaurantId,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

var userColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"role",
	"restaurant_id",
	"active",
	"created_at",
	"updated_at",
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var dal UserDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.PasswordHash,
		&dal.Role,
		&dal.RestaurantId,
		&dal.Active,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new user and returns it with its assigned id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns(
			"name",
			"email",
			"password_hash",
			"role",
			"restaurant_id",
			"active",
			"created_at",
			"updated_at",
		).
		Values(
			u.Name,
			u.Email,
			u.PasswordHash,
			u.Role.String(),
			u.RestaurantID,
			u.Active,
			u.CreatedAt,
			u.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanUser(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return *inserted, nil
}

// GetByID retrieves a single user.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a single user by email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *PostgresUserRepository) getBy(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	u, err := scanUser(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iuserrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
