package model

import (
	"time"
)

// Role is a closed set: anything outside it is rejected at the boundary.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	ProfileImage   string     `json:"profile_image,omitempty"`
	HashedPassword string     `json:"-"` // Not exposed
	Role           Role       `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DefaultProfileImage matches the asset the storefront falls back to.
const DefaultProfileImage = "/assets/images/profile-01.png"
