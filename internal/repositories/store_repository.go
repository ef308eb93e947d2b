package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aerozone_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// StoreRepository defines the database operations on store registrations.
type StoreRepository interface {
	CreateStore(ctx context.Context, executor SQLExecutor, store *models.Store) (int64, error)
	GetStoreByID(ctx context.Context, storeID int64) (*models.Store, error)
	GetStoreByOwnerID(ctx context.Context, ownerID int64) (*models.Store, error)
	GetStores(ctx context.Context, status *string) ([]models.Store, error)
	// ReviewStore moves a pending store to newStatus; ErrConditionFailed if it is no longer pending.
	ReviewStore(ctx context.Context, executor SQLExecutor, storeID int64, newStatus string, reviewerID int64) error
}

type storeRepository struct {
	db *sqlx.DB
}

// NewStoreRepository creates a new instance of StoreRepository.
func NewStoreRepository(db *sqlx.DB) StoreRepository {
	return &storeRepository{db: db}
}

const storeColumns = `id, owner_id, name, address, status, reviewed_by, reviewed_at, created_at, updated_at`

func (r *storeRepository) CreateStore(ctx context.Context, executor SQLExecutor, store *models.Store) (int64, error) {
	query := executor.Rebind(`INSERT INTO stores (owner_id, name, address, status, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	currentTime := now()
	err := executor.QueryRowxContext(ctx, query,
		store.OwnerID, store.Name, store.Address, store.Status, currentTime, currentTime,
	).Scan(&store.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: owner %d already registered a store: %v", ErrDuplicateKey, store.OwnerID, err)
		}
		return 0, fmt.Errorf("%w: creating store: %v", ErrDatabaseError, err)
	}
	store.CreatedAt, store.UpdatedAt = currentTime, currentTime
	return store.ID, nil
}

func (r *storeRepository) GetStoreByID(ctx context.Context, storeID int64) (*models.Store, error) {
	store := &models.Store{}
	query := r.db.Rebind(`SELECT ` + storeColumns + ` FROM stores WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.db, store, query, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store by ID %d: %v", ErrDatabaseError, storeID, err)
	}
	return store, nil
}

func (r *storeRepository) GetStoreByOwnerID(ctx context.Context, ownerID int64) (*models.Store, error) {
	store := &models.Store{}
	query := r.db.Rebind(`SELECT ` + storeColumns + ` FROM stores WHERE owner_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, store, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store by owner ID %d: %v", ErrDatabaseError, ownerID, err)
	}
	return store, nil
}

func (r *storeRepository) GetStores(ctx context.Context, status *string) ([]models.Store, error) {
	stores := []models.Store{}
	query := `SELECT ` + storeColumns + ` FROM stores`
	var args []interface{}
	if status != nil && *status != "" {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if err := sqlx.SelectContext(ctx, r.db, &stores, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: getting stores: %v", ErrDatabaseError, err)
	}
	return stores, nil
}

func (r *storeRepository) ReviewStore(ctx context.Context, executor SQLExecutor, storeID int64, newStatus string, reviewerID int64) error {
	query := executor.Rebind(`UPDATE stores
	          SET status = ?, reviewed_by = ?, reviewed_at = ?, updated_at = ?
	          WHERE id = ? AND status = ?`)
	currentTime := now()
	result, err := executor.ExecContext(ctx, query,
		newStatus, reviewerID, currentTime, currentTime, storeID, models.StoreStatusPending)
	if err != nil {
		return fmt.Errorf("%w: reviewing store ID %d: %v", ErrDatabaseError, storeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for store review ID %d: %v", ErrDatabaseError, storeID, err)
	}
	if rowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}
