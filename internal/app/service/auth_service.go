package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stylemart/internal/common"
	"stylemart/internal/common/security"
	"stylemart/internal/domain/model"
	"stylemart/internal/domain/repository"
)

// AuthService owns registration, login and profile access. Password hashes
// never leave this layer: every User it returns has the hash cleared.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Name            string `json:"name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Birthdate       string `json:"birthdate"` // YYYY-MM-DD
	Gender          string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UpdateProfileRequest carries optional changes; nil fields are left alone.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Birthdate    *string `json:"birthdate,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Password     *string `json:"password,omitempty"`
}

// Register validates the payload, hashes the password and persists the user.
// The hash is computed before anything touches the store, so a hashing
// failure means no write at all.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, fmt.Errorf("name, email, password and confirm_password are required: %w", common.ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}

	var birthdate *time.Time
	if req.Birthdate != "" {
		d, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("birthdate must be YYYY-MM-DD: %w", common.ErrValidation)
		}
		birthdate = &d
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthdate:      birthdate,
		Gender:         req.Gender,
		ProfileImage:   model.DefaultProfileImage,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password collapse into the same unauthorized error so callers
// cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UpdateProfile applies partial changes. Re-hashing is strictly conditioned
// on the password actually changing; any other update leaves the stored
// hash untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.Birthdate != nil {
		d, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("birthdate must be YYYY-MM-DD: %w", common.ErrValidation)
		}
		user.Birthdate = &d
	}

	passwordChanged := req.Password != nil && *req.Password != ""
	if passwordChanged {
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	// FindByID never loads the hash, so HashedPassword is empty here unless
	// the flag above set it; the repository keeps the stored value for an
	// empty hash.

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}
