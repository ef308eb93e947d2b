package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aerozone_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// StockMovementRepository defines the database operations on the stock audit trail.
type StockMovementRepository interface {
	CreateMovement(ctx context.Context, executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(ctx context.Context, storeID int64, filters models.MovementFilters) ([]models.StockMovement, int, error)
	GetLastMovementDates(ctx context.Context, storeID int64) (map[int64]time.Time, error)
}

type stockMovementRepository struct {
	db *sqlx.DB
}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository(db *sqlx.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateMovement(ctx context.Context, executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := executor.Rebind(`INSERT INTO stock_movements
	          (store_id, stock_item_id, actor_id, movement_type, quantity_changed, sale_id, reason, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = now()
	}
	err := executor.QueryRowxContext(ctx, query,
		movement.StoreID, movement.StockItemID, movement.ActorID, movement.MovementType,
		movement.QuantityChanged, movement.SaleID, movement.Reason, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *stockMovementRepository) GetMovements(ctx context.Context, storeID int64, filters models.MovementFilters) ([]models.StockMovement, int, error) {
	type movementRow struct {
		models.StockMovement
		TotalCount int `db:"total_count"`
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    m.id, m.store_id, m.stock_item_id, m.actor_id, m.movement_type, m.quantity_changed,
	    m.sale_id, m.reason, m.created_at,
	    si.name AS item_name,
	    COUNT(*) OVER() AS total_count
	  FROM stock_movements m
	  JOIN stock_items si ON m.stock_item_id = si.id`)

	conditions := []string{"m.store_id = ?"}
	args := []interface{}{storeID}
	if filters.StockItemID != nil {
		conditions = append(conditions, "m.stock_item_id = ?")
		args = append(args, *filters.StockItemID)
	}
	if filters.MovementType != nil && *filters.MovementType != "" {
		conditions = append(conditions, "m.movement_type = ?")
		args = append(args, *filters.MovementType)
	}
	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY m.created_at DESC, m.id DESC")

	page, pageSize := filters.Page, filters.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	queryBuilder.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, pageSize, (page-1)*pageSize)

	rows := []movementRow{}
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(queryBuilder.String()), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}

	movements := make([]models.StockMovement, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		totalCount = row.TotalCount
		movements = append(movements, row.StockMovement)
	}
	return movements, totalCount, nil
}

// GetLastMovementDates maps each item of the store to the time of its latest movement.
// Items without movements are absent from the map.
func (r *stockMovementRepository) GetLastMovementDates(ctx context.Context, storeID int64) (map[int64]time.Time, error) {
	query := r.db.Rebind(`SELECT m.stock_item_id, m.created_at
	          FROM stock_movements m
	          WHERE m.store_id = ?
	            AND m.id = (SELECT MAX(m2.id) FROM stock_movements m2 WHERE m2.stock_item_id = m.stock_item_id)`)

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting last movement dates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	dates := make(map[int64]time.Time)
	for rows.Next() {
		var itemID int64
		var at time.Time
		if err := rows.Scan(&itemID, &at); err != nil {
			return nil, fmt.Errorf("%w: scanning last movement date: %v", ErrDatabaseError, err)
		}
		dates[itemID] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating last movement dates: %v", ErrDatabaseError, err)
	}
	return dates, nil
}
