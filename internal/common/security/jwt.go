package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"stylemart/internal/common"
)

// TokenManager issues and verifies the signed session tokens. The signing
// secret is fixed at construction and never changes for the process
// lifetime. Tokens are stateless: there is no revocation list, an issued
// token stays valid until its expiry.
type TokenManager struct {
	auth   *jwtauth.JWTAuth
	secret []byte
	exp    time.Duration
}

// Claims carried by a session token. Email and role are denormalized from
// the user record at issuance time.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret []byte, exp time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt signing secret is not configured")
	}
	return &TokenManager{
		auth:   jwtauth.New("HS256", secret, nil),
		secret: secret,
		exp:    exp,
	}, nil
}

// JWTAuth exposes the underlying verifier for the router-level
// jwtauth.Verifier middleware.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.auth
}

// Issue signs a token for the given identity with expiry now + the
// configured validity window.
func (m *TokenManager) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(m.exp).Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("security.Issue: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// parsing or signature validation yields common.ErrTokenInvalid.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// Helpers to extract identity claims from the map stored in the request
// context by jwtauth.Verifier.

func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserEmailFromClaims(claims map[string]interface{}) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetUserRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
