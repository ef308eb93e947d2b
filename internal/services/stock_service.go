package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"
	"aerozone_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	defaultReorderLevel  = 5
	defaultCriticalLevel = 2

	// maxQuantity is the largest stock count the INTEGER columns hold.
	maxQuantity = math.MaxInt32
)

// maxMoney is the largest amount a NUMERIC(12,2) column holds.
var maxMoney = decimal.RequireFromString("9999999999.99")

// --- Data Transfer Objects (DTOs) ---

// CreateStockItemRequest is used for adding a new item to a store's ledger.
type CreateStockItemRequest struct {
	Name          string           `json:"name" binding:"required"`
	Brand         *string          `json:"brand"`
	Model         *string          `json:"model"`
	Quantity      int              `json:"quantity" binding:"gte=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ReorderLevel  *int             `json:"reorder_level"`
	CriticalLevel *int             `json:"critical_level"`
}

// UpdateStockItemRequest changes descriptive fields and thresholds. Quantity only moves through stock additions and sales.
type UpdateStockItemRequest struct {
	Name          *string          `json:"name"`
	Brand         *string          `json:"brand"`
	Model         *string          `json:"model"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ReorderLevel  *int             `json:"reorder_level"`
	CriticalLevel *int             `json:"critical_level"`
}

// AddStockRequest is the body of an add-stock call.
type AddStockRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// SetAvailabilityRequest toggles whether an item can be sold.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// --- StockService Interface ---
type StockService interface {
	CreateItem(ctx context.Context, p models.Principal, req CreateStockItemRequest) (*models.StockItem, error)
	GetItem(ctx context.Context, p models.Principal, itemID int64) (*models.StockItemView, error)
	UpdateItem(ctx context.Context, p models.Principal, itemID int64, req UpdateStockItemRequest) (*models.StockItem, error)
	SetAvailability(ctx context.Context, p models.Principal, itemID int64, available bool) (*models.StockItem, error)
	AddStock(ctx context.Context, p models.Principal, itemID int64, amount int, reason string) (*models.StockItem, error)
	ListAvailableItems(ctx context.Context, p models.Principal) ([]models.StockItem, error)
	ListInventory(ctx context.Context, p models.Principal, status string) ([]models.StockItemView, error)
	ListMovements(ctx context.Context, p models.Principal, filters models.MovementFilters) ([]models.StockMovement, int, error)
}

// --- stockService Implementation ---
type stockService struct {
	stockRepo    repositories.StockRepository
	movementRepo repositories.StockMovementRepository
	db           *sqlx.DB
}

// NewStockService creates a new instance of StockService.
func NewStockService(sr repositories.StockRepository, mr repositories.StockMovementRepository, db *sqlx.DB) StockService {
	return &stockService{
		stockRepo:    sr,
		movementRepo: mr,
		db:           db,
	}
}

// validateMoney accepts non-negative amounts with at most two fraction digits.
func validateMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", ErrValidation, field)
	}
	if d.GreaterThan(maxMoney) {
		return fmt.Errorf("%w: %s must not exceed %s", ErrValidation, field, maxMoney.StringFixed(2))
	}
	return nil
}

func validateThresholds(reorderLevel, criticalLevel int) error {
	if reorderLevel < 1 || reorderLevel > maxQuantity {
		return fmt.Errorf("%w: reorder_level must be between 1 and %d", ErrValidation, maxQuantity)
	}
	if criticalLevel < 0 || criticalLevel > reorderLevel {
		return fmt.Errorf("%w: critical_level must be between 0 and reorder_level", ErrValidation)
	}
	return nil
}

// loadStoreItem returns the item if it belongs to storeID, ErrStockItemNotFound otherwise.
func (s *stockService) loadStoreItem(ctx context.Context, executor repositories.SQLExecutor, storeID, itemID int64) (*models.StockItem, error) {
	item, err := s.stockRepo.GetItemByID(ctx, executor, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
		}
		return nil, persistenceError("loading stock item", err)
	}
	if item.StoreID != storeID {
		return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
	}
	return item, nil
}

func (s *stockService) CreateItem(ctx context.Context, p models.Principal, req CreateStockItemRequest) (*models.StockItem, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Quantity < 0 || req.Quantity > maxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 0 and %d", ErrValidation, maxQuantity)
	}

	reorderLevel := defaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}
	criticalLevel := min(defaultCriticalLevel, reorderLevel)
	if req.CriticalLevel != nil {
		criticalLevel = *req.CriticalLevel
	}
	if err := validateThresholds(reorderLevel, criticalLevel); err != nil {
		return nil, err
	}

	item := &models.StockItem{
		StoreID:       storeID,
		Name:          name,
		Brand:         utils.TrimPtr(req.Brand),
		Model:         utils.TrimPtr(req.Model),
		Quantity:      req.Quantity,
		ReorderLevel:  reorderLevel,
		CriticalLevel: criticalLevel,
		IsAvailable:   true,
	}
	if req.UnitPrice != nil {
		if err := validateMoney("unit_price", *req.UnitPrice); err != nil {
			return nil, err
		}
		item.UnitPrice = models.NewNullMoney(*req.UnitPrice)
	}

	if _, err := s.stockRepo.CreateItem(ctx, s.db, item); err != nil {
		return nil, persistenceError("creating stock item", err)
	}
	return item, nil
}

func (s *stockService) GetItem(ctx context.Context, p models.Principal, itemID int64) (*models.StockItemView, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	item, err := s.loadStoreItem(ctx, s.db, storeID, itemID)
	if err != nil {
		return nil, err
	}
	return &models.StockItemView{StockItem: *item, Status: string(ClassifyItem(*item))}, nil
}

func (s *stockService) UpdateItem(ctx context.Context, p models.Principal, itemID int64, req UpdateStockItemRequest) (*models.StockItem, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistenceError("starting transaction", err)
	}
	defer tx.Rollback()

	item, err := s.loadStoreItem(ctx, tx, storeID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		item.Name = name
	}
	if req.Brand != nil {
		item.Brand = utils.TrimPtr(req.Brand)
	}
	if req.Model != nil {
		item.Model = utils.TrimPtr(req.Model)
	}
	if req.UnitPrice != nil {
		if err := validateMoney("unit_price", *req.UnitPrice); err != nil {
			return nil, err
		}
		item.UnitPrice = models.NewNullMoney(*req.UnitPrice)
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.CriticalLevel != nil {
		item.CriticalLevel = *req.CriticalLevel
	}
	if err := validateThresholds(item.ReorderLevel, item.CriticalLevel); err != nil {
		return nil, err
	}

	if err := s.stockRepo.UpdateItem(ctx, tx, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
		}
		return nil, persistenceError("updating stock item", err)
	}
	updated, err := s.stockRepo.GetItemByID(ctx, tx, itemID)
	if err != nil {
		return nil, persistenceError("reloading stock item", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceError("committing item update", err)
	}
	return updated, nil
}

// SetAvailability is the soft delete of the ledger: items are never removed, only withdrawn from sale.
func (s *stockService) SetAvailability(ctx context.Context, p models.Principal, itemID int64, available bool) (*models.StockItem, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	if err := s.stockRepo.SetAvailability(ctx, s.db, storeID, itemID, available); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
		}
		return nil, persistenceError("setting availability", err)
	}
	return s.loadStoreItem(ctx, s.db, storeID, itemID)
}

// AddStock increments the item's quantity and records a stock_add movement in one transaction.
func (s *stockService) AddStock(ctx context.Context, p models.Principal, itemID int64, amount int, reason string) (*models.StockItem, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", ErrValidation)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistenceError("starting transaction", err)
	}
	defer tx.Rollback()

	item, err := s.stockRepo.GetItemByID(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
		}
		return nil, persistenceError("loading stock item", err)
	}
	if item.StoreID != storeID {
		return nil, fmt.Errorf("%w: item ID %d does not belong to store %d", ErrValidation, itemID, storeID)
	}
	if amount > maxQuantity-item.Quantity {
		return nil, fmt.Errorf("%w: adding %d units to %d would exceed the maximum stock of %d", ErrValidation, amount, item.Quantity, maxQuantity)
	}

	if _, err := s.stockRepo.IncrementStock(ctx, tx, storeID, itemID, amount); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, itemID)
		}
		return nil, persistenceError("incrementing stock", err)
	}

	movement := &models.StockMovement{
		StoreID:         storeID,
		StockItemID:     itemID,
		ActorID:         p.UserID,
		MovementType:    models.MovementTypeStockAdd,
		QuantityChanged: amount,
		Reason:          utils.TrimPtr(&reason),
	}
	if _, err := s.movementRepo.CreateMovement(ctx, tx, movement); err != nil {
		return nil, persistenceError("recording stock movement", err)
	}

	updated, err := s.stockRepo.GetItemByID(ctx, tx, itemID)
	if err != nil {
		return nil, persistenceError("reloading stock item", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceError("committing stock addition", err)
	}
	return updated, nil
}

func (s *stockService) ListAvailableItems(ctx context.Context, p models.Principal) ([]models.StockItem, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	items, err := s.stockRepo.GetAvailableItems(ctx, storeID)
	if err != nil {
		return nil, persistenceError("listing available items", err)
	}
	return items, nil
}

// ListInventory returns every item of the store with its tier, most urgent first.
func (s *stockService) ListInventory(ctx context.Context, p models.Principal, status string) ([]models.StockItemView, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	filter, err := ParseTier(status)
	if err != nil {
		return nil, err
	}
	items, err := s.stockRepo.GetItems(ctx, storeID)
	if err != nil {
		return nil, persistenceError("listing stock items", err)
	}

	views := make([]models.StockItemView, 0, len(items))
	for _, item := range items {
		tier := ClassifyItem(item)
		if !tier.Matches(filter) {
			continue
		}
		views = append(views, models.StockItemView{StockItem: item, Status: string(tier)})
	}
	SortByTier(views)
	return views, nil
}

func (s *stockService) ListMovements(ctx context.Context, p models.Principal, filters models.MovementFilters) ([]models.StockMovement, int, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, 0, err
	}
	if filters.MovementType != nil {
		switch *filters.MovementType {
		case models.MovementTypeStockAdd, models.MovementTypeSale:
		default:
			return nil, 0, fmt.Errorf("%w: unknown movement type %q", ErrValidation, *filters.MovementType)
		}
	}
	movements, total, err := s.movementRepo.GetMovements(ctx, storeID, filters)
	if err != nil {
		return nil, 0, persistenceError("listing stock movements", err)
	}
	return movements, total, nil
}
