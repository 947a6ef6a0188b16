package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// FindByEmail returns the record with the password hash intact. It is
	// only for login verification; nothing downstream of the handlers ever
	// sees the hash.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// List returns all users without password hashes.
	List(ctx context.Context) ([]model.User, error)
	// Delete removes one record and returns it, or (nil, nil) when the id
	// does not exist. Deleting a missing user is not an error.
	Delete(ctx context.Context, id string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, name, first_name, last_name, email, phone, birthdate, gender, profile_image, role, created_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.Birthdate, &u.Gender, &u.ProfileImage, &u.Role, &u.CreatedAt,
	)
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, first_name, last_name, email, phone, birthdate, gender, profile_image, hashed_password, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.FirstName, user.LastName, user.Email, user.Phone,
		user.Birthdate, user.Gender, user.ProfileImage, user.HashedPassword, user.Role, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on email
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, first_name, last_name, email, phone, birthdate, gender, profile_image, hashed_password, role, created_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.Birthdate, &user.Gender, &user.ProfileImage, &user.HashedPassword, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &model.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	// An empty HashedPassword means "unchanged": the stored hash survives
	// every update that did not explicitly set a new one.
	query := `UPDATE users SET
	            name = $1, first_name = $2, last_name = $3, phone = $4,
	            birthdate = $5, gender = $6, profile_image = $7,
	            hashed_password = COALESCE(NULLIF($8, ''), hashed_password)
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		user.Name, user.FirstName, user.LastName, user.Phone,
		user.Birthdate, user.Gender, user.ProfileImage, user.HashedPassword, user.ID,
	)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List rows.Err: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) (*model.User, error) {
	query := `DELETE FROM users WHERE id = $1
	          RETURNING ` + userColumns
	user := &model.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	return user, nil
}
