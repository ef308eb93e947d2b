package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aerozone_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// SaleRepository defines the database operations on the append-only sales ledger.
type SaleRepository interface {
	CreateSale(ctx context.Context, executor SQLExecutor, sale *models.SaleTransaction) (int64, error)
	CreateSaleLine(ctx context.Context, executor SQLExecutor, line *models.SaleLine) (int64, error)
	GetSaleByID(ctx context.Context, storeID, saleID int64) (*models.SaleTransaction, error)
	GetSaleLines(ctx context.Context, saleID int64) ([]models.SaleLine, error)
	GetSales(ctx context.Context, storeID int64, filters models.SaleFilters) ([]models.SaleTransaction, int, error)
	GetDailyTotals(ctx context.Context, storeID int64, filters models.SaleFilters) ([]SaleTotalsRow, error)
}

// SaleTotalsRow is one sale with its number of items sold, used for reports.
type SaleTotalsRow struct {
	models.SaleTransaction
	ItemsSold int `db:"items_sold"`
}

type saleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `s.id, s.store_id, s.customer_name, s.customer_phone, s.customer_email,
	s.total_amount, s.cash_received, s.change_amount, s.notes, s.created_by, s.created_at`

func (r *saleRepository) CreateSale(ctx context.Context, executor SQLExecutor, sale *models.SaleTransaction) (int64, error) {
	query := executor.Rebind(`INSERT INTO sale_transactions
	          (store_id, customer_name, customer_phone, customer_email, total_amount, cash_received,
	           change_amount, notes, created_by, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now()
	}
	err := executor.QueryRowxContext(ctx, query,
		sale.StoreID, sale.CustomerName, sale.CustomerPhone, sale.CustomerEmail, sale.TotalAmount,
		sale.CashReceived, sale.ChangeAmount, sale.Notes, sale.CreatedBy, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale transaction: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) CreateSaleLine(ctx context.Context, executor SQLExecutor, line *models.SaleLine) (int64, error) {
	query := executor.Rebind(`INSERT INTO sale_lines
	          (sale_id, stock_item_id, item_name, quantity, unit_price, total_price)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	err := executor.QueryRowxContext(ctx, query,
		line.SaleID, line.StockItemID, line.ItemName, line.Quantity, line.UnitPrice, line.TotalPrice,
	).Scan(&line.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale line (stock_item_id: %d): %v", ErrDatabaseError, line.StockItemID, err)
	}
	return line.ID, nil
}

func (r *saleRepository) GetSaleByID(ctx context.Context, storeID, saleID int64) (*models.SaleTransaction, error) {
	sale := &models.SaleTransaction{}
	query := r.db.Rebind(`SELECT ` + saleColumns + ` FROM sale_transactions s WHERE s.id = ? AND s.store_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, sale, query, saleID, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return sale, nil
}

func (r *saleRepository) GetSaleLines(ctx context.Context, saleID int64) ([]models.SaleLine, error) {
	lines := []models.SaleLine{}
	query := r.db.Rebind(`SELECT id, sale_id, stock_item_id, item_name, quantity, unit_price, total_price
	          FROM sale_lines WHERE sale_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.db, &lines, query, saleID); err != nil {
		return nil, fmt.Errorf("%w: getting sale lines for sale ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return lines, nil
}

// saleConditions builds the WHERE clause shared by sale listings.
func saleConditions(storeID int64, filters models.SaleFilters) (string, []interface{}) {
	conditions := []string{"s.store_id = ?"}
	args := []interface{}{storeID}
	if filters.From != nil {
		conditions = append(conditions, "s.created_at >= ?")
		args = append(args, filters.From.UTC())
	}
	if filters.To != nil {
		conditions = append(conditions, "s.created_at < ?")
		args = append(args, filters.To.UTC())
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *saleRepository) GetSales(ctx context.Context, storeID int64, filters models.SaleFilters) ([]models.SaleTransaction, int, error) {
	type saleRow struct {
		models.SaleTransaction
		TotalCount int `db:"total_count"`
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + saleColumns + `, COUNT(*) OVER() AS total_count FROM sale_transactions s`)
	where, args := saleConditions(storeID, filters)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY s.created_at DESC, s.id DESC")
	if filters.PageSize > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		page := filters.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	rows := []saleRow{}
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(queryBuilder.String()), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}

	sales := make([]models.SaleTransaction, 0, len(rows))
	totalCount := 0
	for _, row := range rows {
		totalCount = row.TotalCount
		sales = append(sales, row.SaleTransaction)
	}
	return sales, totalCount, nil
}

// GetDailyTotals returns every sale in the range with its item count, oldest first.
// Grouping by day happens in the service so that both drivers agree on day boundaries.
func (r *saleRepository) GetDailyTotals(ctx context.Context, storeID int64, filters models.SaleFilters) ([]SaleTotalsRow, error) {
	where, args := saleConditions(storeID, filters)
	query := `SELECT ` + saleColumns + `,
	            COALESCE((SELECT SUM(l.quantity) FROM sale_lines l WHERE l.sale_id = s.id), 0) AS items_sold
	          FROM sale_transactions s` + where + ` ORDER BY s.created_at ASC, s.id ASC`

	rows := []SaleTotalsRow{}
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: querying sale totals: %v", ErrDatabaseError, err)
	}
	return rows, nil
}
