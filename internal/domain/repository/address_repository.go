package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindByID(ctx context.Context, id string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string) ([]model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id string) error
}

type pgAddressRepository struct {
	db *sql.DB
}

func NewPgAddressRepository(db *sql.DB) AddressRepository {
	return &pgAddressRepository{db: db}
}

const addressColumns = `id, user_id, full_name, phone, street, city, state, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...interface{}) error }, a *model.Address) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.Street, &a.City,
		&a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *pgAddressRepository) Create(ctx context.Context, a *model.Address) error {
	query := `INSERT INTO addresses (id, user_id, full_name, phone, street, city, state, postal_code, country, is_default)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.FullName, a.Phone, a.Street, a.City,
		a.State, a.PostalCode, a.Country, a.IsDefault,
	)
	if err != nil {
		return fmt.Errorf("pgAddressRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAddressRepository) FindByID(ctx context.Context, id string) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	address := &model.Address{}
	if err := scanAddress(r.db.QueryRowContext(ctx, query, id), address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAddressRepository.FindByID: %w", err)
	}
	return address, nil
}

func (r *pgAddressRepository) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAddressRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var a model.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, fmt.Errorf("pgAddressRepository.ListByUser scan: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAddressRepository.ListByUser rows.Err: %w", err)
	}
	return addresses, nil
}

func (r *pgAddressRepository) Update(ctx context.Context, a *model.Address) error {
	query := `UPDATE addresses SET
	            full_name = $1, phone = $2, street = $3, city = $4, state = $5,
	            postal_code = $6, country = $7, is_default = $8, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		a.FullName, a.Phone, a.Street, a.City, a.State,
		a.PostalCode, a.Country, a.IsDefault, a.ID,
	)
	if err != nil {
		return fmt.Errorf("pgAddressRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAddressRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgAddressRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
