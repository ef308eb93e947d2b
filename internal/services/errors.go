package services

import (
	"errors"
	"fmt"

	"aerozone_backend/internal/models"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInsufficientFunds = errors.New("insufficient cash received")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockItemNotFound = errors.New("stock item not found or not available")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreNotApproved  = errors.New("store is not approved")
	ErrStoreExists       = errors.New("a store is already registered for this owner")
	ErrStoreNotPending   = errors.New("store is not pending review")
	ErrForbidden         = errors.New("operation not permitted for this user")
	// ErrPersistence marks storage failures. Nothing was committed; the caller may retry from scratch.
	ErrPersistence = errors.New("persistence failure")
)

// InsufficientStockError names the cart line that could not be served.
// Concurrent is set when the stock was consumed between validation and the guarded decrement.
type InsufficientStockError struct {
	ItemID     int64
	ItemName   string
	Requested  int
	Available  int
	Concurrent bool
}

func (e *InsufficientStockError) Error() string {
	if e.Concurrent {
		return fmt.Sprintf("insufficient stock for %q: requested %d, stock was taken by a concurrent sale", e.ItemName, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ItemName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// requireStore returns the resolved store of a store owner principal.
func requireStore(p models.Principal) (int64, error) {
	if !p.HasRole(models.RoleStoreOwner) || p.StoreID == nil {
		return 0, fmt.Errorf("%w: an approved store is required", ErrForbidden)
	}
	return *p.StoreID, nil
}
