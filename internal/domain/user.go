package domain

import (
	"context"
	"time"
)

// Role is the access class of an authenticated user.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(role string) bool {
	return role == string(RoleStudent) || role == string(RoleFaculty)
}

// User represents a registered user. The email is unique and the role is
// immutable after creation.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser creates a new User instance. The caller supplies the already
// hashed password.
func NewUser(id, name, email, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsFaculty reports whether the user holds the faculty role.
func (u *User) IsFaculty() bool {
	return u.Role == RoleFaculty
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
}
