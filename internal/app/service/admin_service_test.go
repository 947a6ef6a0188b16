package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stylemart/internal/common"
)

func TestListUsers_EmptyIsNotFound(t *testing.T) {
	t.Parallel()

	s := NewAdminService(newMemUserRepo())

	_, err := s.ListUsers(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestListUsers_OmitsPasswordMaterial(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	auth := newAuthService(t, repo)
	s := NewAdminService(repo)

	_, err := auth.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	second := validRegisterRequest()
	second.Email = "b@x.com"
	_, err = auth.Register(context.Background(), second)
	require.NoError(t, err)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.HashedPassword)
	}
}

func TestDeleteUser_ReturnsRemovedRecord(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	auth := newAuthService(t, repo)
	s := NewAdminService(repo)

	created, err := auth.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	removed, err := s.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	require.Equal(t, created.ID, removed.ID)
	require.Equal(t, created.Email, removed.Email)
	require.Empty(t, removed.HashedPassword)

	_, err = auth.Profile(context.Background(), created.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteUser_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	auth := newAuthService(t, repo)
	s := NewAdminService(repo)

	created, err := auth.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	removed, err := s.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)

	// Second delete of the same id succeeds with no record.
	removed, err = s.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	require.Nil(t, removed)
}

func TestDeleteUser_TokenStaysValidUntilExpiry(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	auth := newAuthService(t, repo)
	s := NewAdminService(repo)

	created, err := auth.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "Secret1"})
	require.NoError(t, err)

	_, err = s.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)

	// The issued token still verifies; only the user lookup fails now.
	claims, err := auth.tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)

	_, err = auth.Profile(context.Background(), claims.UserID)
	require.ErrorIs(t, err, common.ErrNotFound)
}
