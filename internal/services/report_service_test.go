package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"aerozone_backend/internal/database/dbtest"
)

func TestInventoryReport(t *testing.T) {
	f := newFixture(t)
	priced := dbtest.SeedItem(t, f.db, f.storeID, "Gearbox V2", 3, "120.50", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Motor High Torque", 10, "60.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Sold Out Scope", 0, "75.00", 5, 2)
	if _, err := f.stockService().AddStock(context.Background(), f.owner, priced, 1, ""); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	svc := NewReportService(f.stockRepo, f.moveRepo, f.saleRepo)
	report, err := svc.GetInventoryReport(context.Background(), f.owner, "")
	if err != nil {
		t.Fatalf("GetInventoryReport: %v", err)
	}
	if len(report.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(report.Items))
	}
	if report.TierCounts["out_of_stock"] != 1 || report.TierCounts["reorder"] != 1 || report.TierCounts["normal"] != 1 {
		t.Errorf("tier counts = %v", report.TierCounts)
	}
	// 4 x 120.50 + 10 x 60.00
	if want := *money("1082.00"); !report.TotalStockValue.Equal(want) {
		t.Errorf("total stock value = %s, want %s", report.TotalStockValue, want)
	}
	for _, row := range report.Items {
		if row.ItemID == priced && row.LastMovementDate == nil {
			t.Errorf("last movement date missing for restocked item")
		}
		if row.ItemID != priced && row.LastMovementDate != nil {
			t.Errorf("%s has a last movement date without movements", row.ItemName)
		}
	}
}

func TestSalesReport(t *testing.T) {
	f := newFixture(t)
	itemA := dbtest.SeedItem(t, f.db, f.storeID, "Sling", 20, "10.00", 5, 2)
	sales := f.saleService()
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC)

	for _, sale := range []struct {
		at  time.Time
		qty int
	}{{day1, 1}, {day1.Add(time.Hour), 2}, {day2, 3}} {
		at := sale.at
		sales.clock = func() time.Time { return at }
		if _, err := sales.ProcessSale(context.Background(), f.owner, SaleInput{
			CustomerName: "Walk-in",
			CashReceived: money("100"),
			Cart:         []SaleLineInput{{ItemID: itemA, Quantity: sale.qty, UnitPrice: money("10.00")}},
		}); err != nil {
			t.Fatalf("ProcessSale: %v", err)
		}
	}

	svc := NewReportService(f.stockRepo, f.moveRepo, f.saleRepo)
	report, err := svc.GetSalesReport(context.Background(), f.owner, "2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("GetSalesReport: %v", err)
	}
	if report.SalesCount != 3 || !report.TotalAmount.Equal(*money("60")) {
		t.Errorf("report totals = %d / %s", report.SalesCount, report.TotalAmount)
	}
	if len(report.Days) != 2 {
		t.Fatalf("days = %+v, want 2 entries", report.Days)
	}
	if report.Days[0].Date != "2026-03-01" || report.Days[0].SalesCount != 2 || report.Days[0].ItemsSold != 3 {
		t.Errorf("day 1 = %+v", report.Days[0])
	}
	if report.Days[1].Date != "2026-03-03" || !report.Days[1].TotalAmount.Equal(*money("30")) {
		t.Errorf("day 2 = %+v", report.Days[1])
	}

	narrow, err := svc.GetSalesReport(context.Background(), f.owner, "2026-03-02", "2026-03-02")
	if err != nil {
		t.Fatalf("GetSalesReport(narrow): %v", err)
	}
	if narrow.SalesCount != 0 || len(narrow.Days) != 0 {
		t.Errorf("narrow report = %+v", narrow)
	}

	if _, err := svc.GetSalesReport(context.Background(), f.owner, "2026-03-05", "2026-03-01"); !errors.Is(err, ErrValidation) {
		t.Errorf("inverted range: err = %v, want ErrValidation", err)
	}
	if _, err := svc.GetSalesReport(context.Background(), f.owner, "03/01/2026", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("bad date: err = %v, want ErrValidation", err)
	}
}
