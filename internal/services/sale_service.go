package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"
	"aerozone_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// --- Data Transfer Objects (DTOs) ---

// SaleLineInput is one cart line. UnitPrice is the price agreed at the counter.
type SaleLineInput struct {
	ItemID    int64            `json:"item_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

// SaleInput is the validated request to record a sale.
type SaleInput struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerPhone *string          `json:"customer_phone"`
	CustomerEmail *string          `json:"customer_email"`
	CashReceived  *decimal.Decimal `json:"cash_received" binding:"required"`
	Notes         *string          `json:"notes"`
	Cart          []SaleLineInput  `json:"cart" binding:"required,min=1,dive"`
}

// SaleResult is returned for a committed sale.
type SaleResult struct {
	SaleID       int64           `json:"sale_id"`
	TotalAmount  models.Money `json:"total_amount"`
	CashReceived models.Money `json:"cash_received"`
	ChangeAmount models.Money `json:"change_amount"`
}

// --- SaleService Interface ---
type SaleService interface {
	ProcessSale(ctx context.Context, p models.Principal, in SaleInput) (*SaleResult, error)
	GetSale(ctx context.Context, p models.Principal, saleID int64) (*models.SaleTransaction, error)
	ListSales(ctx context.Context, p models.Principal, filters models.SaleFilters) ([]models.SaleTransaction, int, error)
}

// --- saleService Implementation ---
type saleService struct {
	saleRepo     repositories.SaleRepository
	stockRepo    repositories.StockRepository
	movementRepo repositories.StockMovementRepository
	db           *sqlx.DB
	clock        func() time.Time
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	sr repositories.SaleRepository,
	str repositories.StockRepository,
	mr repositories.StockMovementRepository,
	db *sqlx.DB,
) SaleService {
	return &saleService{
		saleRepo:     sr,
		stockRepo:    str,
		movementRepo: mr,
		db:           db,
		clock:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// validateSaleInput checks the request shape. It runs before any storage access.
func validateSaleInput(in SaleInput) (cash, total decimal.Decimal, err error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return cash, total, fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if in.CustomerEmail != nil && strings.TrimSpace(*in.CustomerEmail) != "" {
		if !utils.IsValidEmail(strings.TrimSpace(*in.CustomerEmail)) {
			return cash, total, fmt.Errorf("%w: customer_email is not a valid email address", ErrValidation)
		}
	}
	if len(in.Cart) == 0 {
		return cash, total, fmt.Errorf("%w: cart must contain at least one item", ErrValidation)
	}
	if in.CashReceived == nil {
		return cash, total, fmt.Errorf("%w: cash_received is required", ErrValidation)
	}
	cash = *in.CashReceived
	if err := validateMoney("cash_received", cash); err != nil {
		return cash, total, err
	}

	seen := make(map[int64]struct{}, len(in.Cart))
	total = decimal.Zero
	for i, line := range in.Cart {
		if line.ItemID <= 0 {
			return cash, total, fmt.Errorf("%w: cart[%d].item_id is required", ErrValidation, i)
		}
		if _, dup := seen[line.ItemID]; dup {
			return cash, total, fmt.Errorf("%w: item ID %d appears more than once in the cart", ErrValidation, line.ItemID)
		}
		seen[line.ItemID] = struct{}{}
		if line.Quantity <= 0 {
			return cash, total, fmt.Errorf("%w: cart[%d].quantity must be a positive integer", ErrValidation, i)
		}
		if line.UnitPrice == nil {
			return cash, total, fmt.Errorf("%w: cart[%d].unit_price is required", ErrValidation, i)
		}
		if err := validateMoney(fmt.Sprintf("cart[%d].unit_price", i), *line.UnitPrice); err != nil {
			return cash, total, err
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if total.GreaterThan(maxMoney) {
		return cash, total, fmt.Errorf("%w: cart total %s exceeds %s", ErrValidation, total.StringFixed(2), maxMoney.StringFixed(2))
	}
	return cash, total, nil
}

// ProcessSale validates the cart, checks payment and stock, and commits the sale
// header, its lines, the stock decrements and their movements atomically.
// No partial effects are visible on any error path.
func (s *saleService) ProcessSale(ctx context.Context, p models.Principal, in SaleInput) (*SaleResult, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	cash, total, err := validateSaleInput(in)
	if err != nil {
		return nil, err
	}
	if cash.LessThan(total) {
		return nil, fmt.Errorf("%w: cash received %s is less than total %s",
			ErrInsufficientFunds, cash.StringFixed(2), total.StringFixed(2))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistenceError("starting sale transaction", err)
	}
	defer tx.Rollback()

	items := make([]*models.StockItem, len(in.Cart))
	for i, line := range in.Cart {
		item, err := s.stockRepo.GetItemByID(ctx, tx, line.ItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, line.ItemID)
			}
			return nil, persistenceError("loading cart item", err)
		}
		if item.StoreID != storeID || !item.IsAvailable {
			return nil, fmt.Errorf("%w: item ID %d", ErrStockItemNotFound, line.ItemID)
		}
		if item.Quantity < line.Quantity {
			return nil, &InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: line.Quantity,
				Available: item.Quantity,
			}
		}
		items[i] = item
	}

	sale := &models.SaleTransaction{
		StoreID:       storeID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: utils.TrimPtr(in.CustomerPhone),
		CustomerEmail: utils.TrimPtr(in.CustomerEmail),
		TotalAmount:   models.NewMoney(total),
		CashReceived:  models.NewMoney(cash),
		ChangeAmount:  models.NewMoney(cash.Sub(total)),
		Notes:         utils.TrimPtr(in.Notes),
		CreatedBy:     p.UserID,
		CreatedAt:     s.clock(),
	}
	if _, err := s.saleRepo.CreateSale(ctx, tx, sale); err != nil {
		return nil, persistenceError("inserting sale", err)
	}

	saleID := sale.ID
	for i, line := range in.Cart {
		item := items[i]
		saleLine := &models.SaleLine{
			SaleID:      saleID,
			StockItemID: item.ID,
			ItemName:    item.Name,
			Quantity:    line.Quantity,
			UnitPrice:   models.NewMoney(*line.UnitPrice),
			TotalPrice:  models.NewMoney(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		}
		if _, err := s.saleRepo.CreateSaleLine(ctx, tx, saleLine); err != nil {
			return nil, persistenceError("inserting sale line", err)
		}

		if err := s.stockRepo.DecrementStock(ctx, tx, storeID, item.ID, line.Quantity); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return nil, &InsufficientStockError{
					ItemID:     item.ID,
					ItemName:   item.Name,
					Requested:  line.Quantity,
					Concurrent: true,
				}
			}
			return nil, persistenceError("decrementing stock", err)
		}

		movement := &models.StockMovement{
			StoreID:         storeID,
			StockItemID:     item.ID,
			ActorID:         p.UserID,
			MovementType:    models.MovementTypeSale,
			QuantityChanged: -line.Quantity,
			SaleID:          &saleID,
			CreatedAt:       sale.CreatedAt,
		}
		if _, err := s.movementRepo.CreateMovement(ctx, tx, movement); err != nil {
			return nil, persistenceError("recording sale movement", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, persistenceError("committing sale", err)
	}

	return &SaleResult{
		SaleID:       sale.ID,
		TotalAmount:  sale.TotalAmount,
		CashReceived: sale.CashReceived,
		ChangeAmount: sale.ChangeAmount,
	}, nil
}

func (s *saleService) GetSale(ctx context.Context, p models.Principal, saleID int64) (*models.SaleTransaction, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.GetSaleByID(ctx, storeID, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: sale ID %d", ErrSaleNotFound, saleID)
		}
		return nil, persistenceError("loading sale", err)
	}
	lines, err := s.saleRepo.GetSaleLines(ctx, sale.ID)
	if err != nil {
		return nil, persistenceError("loading sale lines", err)
	}
	sale.Lines = lines
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, p models.Principal, filters models.SaleFilters) ([]models.SaleTransaction, int, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, 0, err
	}
	if filters.From != nil && filters.To != nil && !filters.From.Before(*filters.To) {
		return nil, 0, fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}
	sales, total, err := s.saleRepo.GetSales(ctx, storeID, filters)
	if err != nil {
		return nil, 0, persistenceError("listing sales", err)
	}
	return sales, total, nil
}
