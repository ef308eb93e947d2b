package models

import (
	"strings"
	"time"
)

// Roles known to the application.
const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RolePlayer     = "player"
)

// User represents an account in the system
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        *string   `json:"email,omitempty" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the authenticated caller of a service operation.
// StoreID is set only after the store scope has been resolved for a store owner.
type Principal struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	StoreID  *int64 `json:"store_id,omitempty"`
}

// HasRole reports whether the principal holds one of roles (case-insensitive).
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(p.Role, r) {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStoreOwner, RolePlayer:
		return true
	}
	return false
}
