package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aerozone_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// StockRepository defines the database operations on the stock ledger.
type StockRepository interface {
	CreateItem(ctx context.Context, executor SQLExecutor, item *models.StockItem) (int64, error)
	GetItemByID(ctx context.Context, executor SQLExecutor, itemID int64) (*models.StockItem, error)
	UpdateItem(ctx context.Context, executor SQLExecutor, item *models.StockItem) error
	SetAvailability(ctx context.Context, executor SQLExecutor, storeID, itemID int64, available bool) error
	GetItems(ctx context.Context, storeID int64) ([]models.StockItem, error)
	GetAvailableItems(ctx context.Context, storeID int64) ([]models.StockItem, error)
	// IncrementStock adds amount to the item's quantity and returns the new quantity.
	IncrementStock(ctx context.Context, executor SQLExecutor, storeID, itemID int64, amount int) (int, error)
	// DecrementStock subtracts quantity only if the result stays non-negative.
	// It returns ErrConditionFailed when the guard rejects the update.
	DecrementStock(ctx context.Context, executor SQLExecutor, storeID, itemID int64, quantity int) error
}

type stockRepository struct {
	db *sqlx.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sqlx.DB) StockRepository {
	return &stockRepository{db: db}
}

const stockItemColumns = `id, store_id, name, brand, model, quantity, unit_price,
	reorder_level, critical_level, is_available, created_at, updated_at`

func (r *stockRepository) CreateItem(ctx context.Context, executor SQLExecutor, item *models.StockItem) (int64, error) {
	query := executor.Rebind(`INSERT INTO stock_items
	          (store_id, name, brand, model, quantity, unit_price, reorder_level, critical_level, is_available, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	currentTime := now()
	err := executor.QueryRowxContext(ctx, query,
		item.StoreID, item.Name, item.Brand, item.Model, item.Quantity, item.UnitPrice,
		item.ReorderLevel, item.CriticalLevel, item.IsAvailable, currentTime, currentTime,
	).Scan(&item.ID)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: stock item violates a check constraint: %v", ErrDatabaseError, err)
		}
		return 0, fmt.Errorf("%w: creating stock item: %v", ErrDatabaseError, err)
	}
	item.CreatedAt, item.UpdatedAt = currentTime, currentTime
	return item.ID, nil
}

func (r *stockRepository) GetItemByID(ctx context.Context, executor SQLExecutor, itemID int64) (*models.StockItem, error) {
	item := &models.StockItem{}
	query := executor.Rebind(`SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = ?`)
	if err := sqlx.GetContext(ctx, executor, item, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting stock item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

// UpdateItem rewrites the descriptive fields and thresholds. Quantity is never touched here.
func (r *stockRepository) UpdateItem(ctx context.Context, executor SQLExecutor, item *models.StockItem) error {
	query := executor.Rebind(`UPDATE stock_items
	          SET name = ?, brand = ?, model = ?, unit_price = ?, reorder_level = ?, critical_level = ?, updated_at = ?
	          WHERE id = ? AND store_id = ?`)
	currentTime := now()
	result, err := executor.ExecContext(ctx, query,
		item.Name, item.Brand, item.Model, item.UnitPrice, item.ReorderLevel, item.CriticalLevel, currentTime,
		item.ID, item.StoreID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating stock item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for stock item update ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	item.UpdatedAt = currentTime
	return nil
}

func (r *stockRepository) SetAvailability(ctx context.Context, executor SQLExecutor, storeID, itemID int64, available bool) error {
	query := executor.Rebind(`UPDATE stock_items SET is_available = ?, updated_at = ? WHERE id = ? AND store_id = ?`)
	result, err := executor.ExecContext(ctx, query, available, now(), itemID, storeID)
	if err != nil {
		return fmt.Errorf("%w: setting availability for stock item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for availability update ID %d: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepository) GetItems(ctx context.Context, storeID int64) ([]models.StockItem, error) {
	items := []models.StockItem{}
	query := r.db.Rebind(`SELECT ` + stockItemColumns + ` FROM stock_items WHERE store_id = ? ORDER BY name ASC, id ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &items, query, storeID); err != nil {
		return nil, fmt.Errorf("%w: getting stock items for store %d: %v", ErrDatabaseError, storeID, err)
	}
	return items, nil
}

func (r *stockRepository) GetAvailableItems(ctx context.Context, storeID int64) ([]models.StockItem, error) {
	items := []models.StockItem{}
	query := r.db.Rebind(`SELECT ` + stockItemColumns + ` FROM stock_items
	          WHERE store_id = ? AND is_available = TRUE AND quantity > 0
	          ORDER BY name ASC, id ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &items, query, storeID); err != nil {
		return nil, fmt.Errorf("%w: getting available stock items for store %d: %v", ErrDatabaseError, storeID, err)
	}
	return items, nil
}

func (r *stockRepository) IncrementStock(ctx context.Context, executor SQLExecutor, storeID, itemID int64, amount int) (int, error) {
	var newQuantity int
	query := executor.Rebind(`UPDATE stock_items
	          SET quantity = quantity + ?, updated_at = ?
	          WHERE id = ? AND store_id = ?
	          RETURNING quantity`)
	err := executor.QueryRowxContext(ctx, query, amount, now(), itemID, storeID).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: incrementing stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return newQuantity, nil
}

func (r *stockRepository) DecrementStock(ctx context.Context, executor SQLExecutor, storeID, itemID int64, quantity int) error {
	query := executor.Rebind(`UPDATE stock_items
	          SET quantity = quantity - ?, updated_at = ?
	          WHERE id = ? AND store_id = ? AND quantity >= ?`)
	result, err := executor.ExecContext(ctx, query, quantity, now(), itemID, storeID, quantity)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for stock decrement ID %d: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}
