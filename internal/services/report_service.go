package services

import (
	"context"
	"fmt"
	"time"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	reportDateLayout       = "2006-01-02"
	defaultSalesReportDays = 30
)

// --- ReportService Interface ---
type ReportService interface {
	GetInventoryReport(ctx context.Context, p models.Principal, status string) (*models.InventoryReport, error)
	GetSalesReport(ctx context.Context, p models.Principal, startDate, endDate string) (*models.SalesReport, error)
}

type reportService struct {
	stockRepo    repositories.StockRepository
	movementRepo repositories.StockMovementRepository
	saleRepo     repositories.SaleRepository
	now          func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	stockRepo repositories.StockRepository,
	movementRepo repositories.StockMovementRepository,
	saleRepo repositories.SaleRepository,
) ReportService {
	return &reportService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) GetInventoryReport(ctx context.Context, p models.Principal, status string) (*models.InventoryReport, error) {
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
		return nil, persistenceError("loading inventory", err)
	}
	lastMoves, err := s.movementRepo.GetLastMovementDates(ctx, storeID)
	if err != nil {
		return nil, persistenceError("loading last movements", err)
	}

	views := make([]models.StockItemView, 0, len(items))
	for _, item := range items {
		tier := ClassifyItem(item)
		if tier.Matches(filter) {
			views = append(views, models.StockItemView{StockItem: item, Status: string(tier)})
		}
	}
	SortByTier(views)

	report := &models.InventoryReport{
		Items: make([]models.InventoryReportItem, 0, len(views)),
		TierCounts: map[string]int{
			string(TierOutOfStock): 0,
			string(TierCritical):   0,
			string(TierReorder):    0,
			string(TierNormal):     0,
		},
		GeneratedAt: s.now(),
	}
	totalValue := decimal.Zero
	for _, v := range views {
		row := models.InventoryReportItem{
			ItemID:        v.ID,
			ItemName:      v.Name,
			Quantity:      v.Quantity,
			ReorderLevel:  v.ReorderLevel,
			CriticalLevel: v.CriticalLevel,
			UnitPrice:     v.UnitPrice,
			Status:        v.Status,
		}
		if v.UnitPrice.Valid {
			row.StockValue = models.NewMoney(v.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(v.Quantity))))
		}
		if last, ok := lastMoves[v.ID]; ok {
			row.LastMovementDate = &last
		}
		report.TierCounts[v.Status]++
		totalValue = totalValue.Add(row.StockValue.Decimal)
		report.Items = append(report.Items, row)
	}
	report.TotalStockValue = models.NewMoney(totalValue)
	return report, nil
}

// GetSalesReport summarises committed sales per UTC day. Both dates are inclusive;
// an empty range covers the last 30 days.
func (s *reportService) GetSalesReport(ctx context.Context, p models.Principal, startDate, endDate string) (*models.SalesReport, error) {
	storeID, err := requireStore(p)
	if err != nil {
		return nil, err
	}
	from, to, err := s.parseReportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	until := to.AddDate(0, 0, 1)

	rows, err := s.saleRepo.GetDailyTotals(ctx, storeID, models.SaleFilters{From: &from, To: &until})
	if err != nil {
		return nil, persistenceError("loading sales totals", err)
	}

	report := &models.SalesReport{
		From:        from.Format(reportDateLayout),
		To:          to.Format(reportDateLayout),
		Days: []models.SalesReportItem{},
	}
	for _, row := range rows {
		day := row.CreatedAt.UTC().Format(reportDateLayout)
		n := len(report.Days)
		if n == 0 || report.Days[n-1].Date != day {
			report.Days = append(report.Days, models.SalesReportItem{Date: day})
			n++
		}
		current := &report.Days[n-1]
		current.SalesCount++
		current.ItemsSold += row.ItemsSold
		current.TotalAmount = models.NewMoney(current.TotalAmount.Add(row.TotalAmount.Decimal))

		report.SalesCount++
		report.TotalAmount = models.NewMoney(report.TotalAmount.Add(row.TotalAmount.Decimal))
	}
	return report, nil
}

// ParseReportDate parses an optional YYYY-MM-DD date.
func ParseReportDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(reportDateLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be formatted YYYY-MM-DD", ErrValidation, field)
	}
	return &t, nil
}

func (s *reportService) parseReportRange(startDate, endDate string) (from, to time.Time, err error) {
	start, err := ParseReportDate("start_date", startDate)
	if err != nil {
		return from, to, err
	}
	end, err := ParseReportDate("end_date", endDate)
	if err != nil {
		return from, to, err
	}

	today := s.now().Truncate(24 * time.Hour)
	switch {
	case start == nil && end == nil:
		to = today
		from = today.AddDate(0, 0, -(defaultSalesReportDays - 1))
	case start == nil:
		to = *end
		from = end.AddDate(0, 0, -(defaultSalesReportDays - 1))
	case end == nil:
		from = *start
		to = today
	default:
		from, to = *start, *end
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}
	return from, to, nil
}
