package service

import (
	"context"
	"fmt"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
	"stylemart/internal/domain/repository"
)

// AdminService backs the admin-only user management endpoints. Enforcement
// of the admin role happens in the middleware; this layer assumes the
// caller was already admitted.
type AdminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// ListUsers returns every user without password material. An empty
// collection is reported as not found, matching the storefront's 404.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users found: %w", common.ErrNotFound)
	}
	return users, nil
}

// DeleteUser removes one user permanently and returns the removed record.
// Deleting an id that does not exist is not an error; the result is nil.
// Issued session tokens are stateless, so deletion does not invalidate a
// token the user may still hold until it expires.
func (s *AdminService) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}
