package services

import (
	"context"
	"errors"
	"testing"

	"aerozone_backend/internal/database/dbtest"
	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type fixture struct {
	db        *sqlx.DB
	owner     models.Principal
	storeID   int64
	stockRepo repositories.StockRepository
	saleRepo  repositories.SaleRepository
	moveRepo  repositories.StockMovementRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	ownerID := dbtest.SeedUser(t, db, "juan_owner", models.RoleStoreOwner)
	storeID := dbtest.SeedStore(t, db, ownerID, "Juan's Airsoft", models.StoreStatusApproved)
	return &fixture{
		db:        db,
		owner:     models.Principal{UserID: ownerID, Username: "juan_owner", Role: models.RoleStoreOwner, StoreID: &storeID},
		storeID:   storeID,
		stockRepo: repositories.NewStockRepository(db),
		saleRepo:  repositories.NewSaleRepository(db),
		moveRepo:  repositories.NewStockMovementRepository(db),
	}
}

func (f *fixture) saleService() *saleService {
	return NewSaleService(f.saleRepo, f.stockRepo, f.moveRepo, f.db).(*saleService)
}

func (f *fixture) stockService() StockService {
	return NewStockService(f.stockRepo, f.moveRepo, f.db)
}

// otherStore seeds a second approved store and returns a principal for its owner.
func (f *fixture) otherStore(t *testing.T) models.Principal {
	t.Helper()
	ownerID := dbtest.SeedUser(t, f.db, "rival_owner", models.RoleStoreOwner)
	storeID := dbtest.SeedStore(t, f.db, ownerID, "Rival Gear", models.StoreStatusApproved)
	return models.Principal{UserID: ownerID, Username: "rival_owner", Role: models.RoleStoreOwner, StoreID: &storeID}
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func assertNoSaleWritten(t *testing.T, db *sqlx.DB) {
	t.Helper()
	for _, table := range []string{"sale_transactions", "sale_lines", "stock_movements"} {
		if n := dbtest.Count(t, db, table); n != 0 {
			t.Errorf("%s has %d rows, want 0", table, n)
		}
	}
}

// staleStockRepo reports a higher quantity than stored, simulating a sale
// that read the item before a concurrent sale consumed the stock.
type staleStockRepo struct {
	repositories.StockRepository
	inflate map[int64]int
}

func (r *staleStockRepo) GetItemByID(ctx context.Context, executor repositories.SQLExecutor, itemID int64) (*models.StockItem, error) {
	item, err := r.StockRepository.GetItemByID(ctx, executor, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity += r.inflate[itemID]
	return item, nil
}

var errDiskFull = errors.New("disk full")

// failingMovementRepo fails every movement insert.
type failingMovementRepo struct {
	repositories.StockMovementRepository
}

func (r *failingMovementRepo) CreateMovement(ctx context.Context, executor repositories.SQLExecutor, movement *models.StockMovement) (int64, error) {
	return 0, errDiskFull
}
