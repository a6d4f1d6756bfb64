package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id            int64     `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	Category      string    `db:"category"`
	ImageUrl      string    `db:"image_url"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	RestaurantId  int64     `db:"restaurant_id"`
	Available     bool      `db:"available"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		ImageURL:      p.ImageUrl,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		RestaurantID:  p.RestaurantId,
		Available:     p.Available,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// ProductDalFromModel converts service layer Product model to ProductDal.
func ProductDalFromModel(p *product.Product) *ProductDal {
	return &ProductDal{
		Id:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		ImageUrl:      p.ImageURL,
		PriceCents:    p.PriceCents,
		PriceCurrency: p.PriceCurrency.String(),
		RestaurantId:  p.RestaurantID,
		Available:     p.Available,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

var productColumns = []string{
	"id",
	"name",
	"description",
	"category",
	"image_url",
	"price_cents",
	"price_currency",
	"restaurant_id",
	"available",
	"created_at",
	"updated_at",
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.Category,
		&dal.ImageUrl,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.RestaurantId,
		&dal.Available,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new product and returns it with its assigned id.
func (r *PostgresProductRepository) Insert(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	dal := ProductDalFromModel(&p)

	query, args, err := r.sb.Insert("products").
		Columns(
			"name",
			"description",
			"category",
			"image_url",
			"price_cents",
			"price_currency",
			"restaurant_id",
			"available",
			"created_at",
			"updated_at",
		).
		Values(
			dal.Name,
			dal.Description,
			dal.Category,
			dal.ImageUrl,
			dal.PriceCents,
			dal.PriceCurrency,
			dal.RestaurantId,
			dal.Available,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return *inserted, nil
}

// GetByID retrieves a single product.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := r.sb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	p, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iproductrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// Query retrieves products based on filter criteria.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	builder := r.sb.Select(productColumns...).
		From("products").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.RestaurantIds) > 0 {
		builder = builder.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Name != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.AvailableOnly {
		builder = builder.Where(sq.Eq{"available": true})
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
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.Category,
			&dal.ImageUrl,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.RestaurantId,
			&dal.Available,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
		}

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update persists every mutable column of the product.
func (r *PostgresProductRepository) Update(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	dal := ProductDalFromModel(&p)

	query, args, err := r.sb.Update("products").
		Set("name", dal.Name).
		Set("description", dal.Description).
		Set("category", dal.Category).
		Set("image_url", dal.ImageUrl).
		Set("price_cents", dal.PriceCents).
		Set("price_currency", dal.PriceCurrency).
		Set("available", dal.Available).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, iproductrepo.ErrNotFound
		}

		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return *updated, nil
}

// Delete removes a product row.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return iproductrepo.ErrNotFound
	}

	return nil
}
