package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, limit, offset int, category model.ProductCategory, searchTerm string) ([]model.Product, int, error)
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, title, slug, description, category, image_url, price_cents, stock, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Category, &p.ImageURL,
		&p.PriceCents, &p.Stock, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (id, title, slug, description, category, image_url, price_cents, stock, featured)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.Category, p.ImageURL,
		p.PriceCents, p.Stock, p.Featured,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on slug
			return fmt.Errorf("product with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET
	            title = $1, slug = $2, description = $3, category = $4, image_url = $5,
	            price_cents = $6, stock = $7, featured = $8, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Slug, p.Description, p.Category, p.ImageURL,
		p.PriceCents, p.Stock, p.Featured, p.ID,
	)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product := &model.Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByID: %w", err)
	}
	return product, nil
}

func (r *pgProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	product := &model.Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, query, slug), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindBySlug: %w", err)
	}
	return product, nil
}

func (r *pgProductRepository) List(ctx context.Context, limit, offset int, category model.ProductCategory, searchTerm string) ([]model.Product, int, error) {
	var baseQuery strings.Builder
	baseQuery.WriteString(`SELECT ` + productColumns + ` FROM products`)

	var countQuery strings.Builder
	countQuery.WriteString(`SELECT COUNT(*) FROM products`)

	var conditions []string
	var args []interface{}
	argID := 1

	if category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argID))
		args = append(args, category)
		argID++
	}
	if searchTerm != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + searchTerm + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}

	if len(conditions) > 0 {
		whereClause := " WHERE " + strings.Join(conditions, " AND ")
		baseQuery.WriteString(whereClause)
		countQuery.WriteString(whereClause)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProductRepository.List count: %w", err)
	}

	baseQuery.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, baseQuery.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProductRepository.List query: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("pgProductRepository.List scan: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProductRepository.List rows.Err: %w", err)
	}

	return products, total, nil
}
