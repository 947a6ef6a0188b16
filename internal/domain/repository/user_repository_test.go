package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPgUserRepository(db), mock
}

func userRows(users ...model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "first_name", "last_name", "email", "phone",
		"birthdate", "gender", "profile_image", "role", "created_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.Name, u.FirstName, u.LastName, u.Email, u.Phone,
			u.Birthdate, u.Gender, u.ProfileImage, u.Role, u.CreatedAt)
	}
	return rows
}

func sampleUser() model.User {
	return model.User{
		ID:           "u-1",
		Name:         "Alice",
		Email:        "alice@x.com",
		ProfileImage: model.DefaultProfileImage,
		Role:         model.RoleUser,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPgUserRepository_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()
	u.HashedPassword = "hash"

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.FirstName, u.LastName, u.Email, u.Phone,
			u.Birthdate, u.Gender, u.ProfileImage, u.HashedPassword, u.Role, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &u))
}

func TestPgUserRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &u)
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestPgUserRepository_FindByEmail(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()

	rows := sqlmock.NewRows([]string{
		"id", "name", "first_name", "last_name", "email", "phone",
		"birthdate", "gender", "profile_image", "hashed_password", "role", "created_at",
	}).AddRow(u.ID, u.Name, u.FirstName, u.LastName, u.Email, u.Phone,
		u.Birthdate, u.Gender, u.ProfileImage, "stored-hash", u.Role, u.CreatedAt)

	mock.ExpectQuery("FROM users WHERE email =").
		WithArgs(u.Email).
		WillReturnRows(rows)

	found, err := repo.FindByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, found.ID)
	require.Equal(t, "stored-hash", found.HashedPassword)
}

func TestPgUserRepository_FindByEmail_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("FROM users WHERE email =").
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgUserRepository_FindByID_OmitsHash(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id =").
		WithArgs(u.ID).
		WillReturnRows(userRows(u))

	found, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, found.Email)
	require.Empty(t, found.HashedPassword)
}

func TestPgUserRepository_Update_KeepsHashWhenEmpty(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()
	u.Name = "Renamed"

	// The empty hash argument is passed through; COALESCE keeps the stored
	// value on the database side.
	mock.ExpectExec("UPDATE users SET").
		WithArgs(u.Name, u.FirstName, u.LastName, u.Phone,
			u.Birthdate, u.Gender, u.ProfileImage, "", u.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &u))
}

func TestPgUserRepository_Update_MissingUser(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &u)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgUserRepository_List(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	first := sampleUser()
	second := sampleUser()
	second.ID = "u-2"
	second.Email = "bob@x.com"

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
		WillReturnRows(userRows(first, second))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u-1", users[0].ID)
	require.Equal(t, "u-2", users[1].ID)
}

func TestPgUserRepository_List_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
		WillReturnRows(userRows())

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestPgUserRepository_Delete_ReturnsRecord(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)
	u := sampleUser()

	mock.ExpectQuery("DELETE FROM users WHERE id =").
		WithArgs(u.ID).
		WillReturnRows(userRows(u))

	removed, err := repo.Delete(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	require.Equal(t, u.ID, removed.ID)
}

func TestPgUserRepository_Delete_MissingIsNil(t *testing.T) {
	t.Parallel()

	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("DELETE FROM users WHERE id =").
		WithArgs("missing").
		WillReturnRows(userRows())

	removed, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, removed)
}
