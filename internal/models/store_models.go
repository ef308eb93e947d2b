package models

import "time"

// Store registration statuses.
const (
	StoreStatusPending  = "pending"
	StoreStatusApproved = "approved"
	StoreStatusRejected = "rejected"
)

// Store is a store owner's inventory and sales namespace.
type Store struct {
	ID         int64      `json:"id" db:"id"`
	OwnerID    int64      `json:"owner_id" db:"owner_id"`
	Name       string     `json:"name" db:"name"`
	Address    *string    `json:"address,omitempty" db:"address"`
	Status     string     `json:"status" db:"status"`
	ReviewedBy *int64     `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
