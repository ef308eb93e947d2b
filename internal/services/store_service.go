package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"
	"aerozone_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// RegisterStoreRequest DTO
type RegisterStoreRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

// --- StoreService Interface ---
type StoreService interface {
	RegisterStore(ctx context.Context, p models.Principal, req RegisterStoreRequest) (*models.Store, error)
	GetOwnStore(ctx context.Context, p models.Principal) (*models.Store, error)
	ListStores(ctx context.Context, p models.Principal, status string) ([]models.Store, error)
	ReviewStore(ctx context.Context, p models.Principal, storeID int64, approve bool) (*models.Store, error)
	// ResolveStoreScope attaches the owner's approved store to the principal.
	ResolveStoreScope(ctx context.Context, p models.Principal) (models.Principal, error)
}

type storeService struct {
	storeRepo repositories.StoreRepository
	db        *sqlx.DB
}

// NewStoreService creates a new instance of StoreService.
func NewStoreService(repo repositories.StoreRepository, db *sqlx.DB) StoreService {
	return &storeService{storeRepo: repo, db: db}
}

func (s *storeService) RegisterStore(ctx context.Context, p models.Principal, req RegisterStoreRequest) (*models.Store, error) {
	if !p.HasRole(models.RoleStoreOwner) {
		return nil, fmt.Errorf("%w: only store owners can register a store", ErrForbidden)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name is required", ErrValidation)
	}

	store := &models.Store{
		OwnerID: p.UserID,
		Name:    name,
		Address: utils.TrimPtr(req.Address),
		Status:  models.StoreStatusPending,
	}
	if _, err := s.storeRepo.CreateStore(ctx, s.db, store); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrStoreExists
		}
		return nil, persistenceError("registering store", err)
	}
	return store, nil
}

func (s *storeService) GetOwnStore(ctx context.Context, p models.Principal) (*models.Store, error) {
	store, err := s.storeRepo.GetStoreByOwnerID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, persistenceError("loading store", err)
	}
	return store, nil
}

func (s *storeService) ListStores(ctx context.Context, p models.Principal, status string) ([]models.Store, error) {
	if !p.HasRole(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	var filter *string
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		if !isValidStoreStatus(status) {
			return nil, fmt.Errorf("%w: unknown store status %q", ErrValidation, status)
		}
		filter = &status
	}
	stores, err := s.storeRepo.GetStores(ctx, filter)
	if err != nil {
		return nil, persistenceError("listing stores", err)
	}
	return stores, nil
}

// ReviewStore approves or rejects a pending store. Reviewed stores are final.
func (s *storeService) ReviewStore(ctx context.Context, p models.Principal, storeID int64, approve bool) (*models.Store, error) {
	if !p.HasRole(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	newStatus := models.StoreStatusRejected
	if approve {
		newStatus = models.StoreStatusApproved
	}

	if err := s.storeRepo.ReviewStore(ctx, s.db, storeID, newStatus, p.UserID); err != nil {
		if !errors.Is(err, repositories.ErrConditionFailed) {
			return nil, persistenceError("reviewing store", err)
		}
		// Either the store is missing or it was already reviewed.
		if _, getErr := s.storeRepo.GetStoreByID(ctx, storeID); errors.Is(getErr, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: store ID %d", ErrStoreNotFound, storeID)
		}
		return nil, fmt.Errorf("%w: store ID %d", ErrStoreNotPending, storeID)
	}

	store, err := s.storeRepo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, persistenceError("reloading store", err)
	}
	return store, nil
}

func (s *storeService) ResolveStoreScope(ctx context.Context, p models.Principal) (models.Principal, error) {
	if !p.HasRole(models.RoleStoreOwner) {
		return p, fmt.Errorf("%w: store owner role required", ErrForbidden)
	}
	store, err := s.storeRepo.GetStoreByOwnerID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return p, fmt.Errorf("%w: no store registered", ErrStoreNotApproved)
		}
		return p, persistenceError("resolving store", err)
	}
	if store.Status != models.StoreStatusApproved {
		return p, fmt.Errorf("%w: store %q is %s", ErrStoreNotApproved, store.Name, store.Status)
	}
	storeID := store.ID
	p.StoreID = &storeID
	return p, nil
}

func isValidStoreStatus(status string) bool {
	switch status {
	case models.StoreStatusPending, models.StoreStatusApproved, models.StoreStatusRejected:
		return true
	}
	return false
}
