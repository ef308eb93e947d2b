package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"aerozone_backend/internal/database/dbtest"
	"aerozone_backend/internal/models"
)

func TestAddStock(t *testing.T) {
	f := newFixture(t)
	itemA := dbtest.SeedItem(t, f.db, f.storeID, "Hop-up Bucking", 4, "9.00", 5, 2)
	before, err := f.stockRepo.GetItemByID(context.Background(), f.db, itemA)
	if err != nil {
		t.Fatalf("GetItemByID: %v", err)
	}

	item, err := f.stockService().AddStock(context.Background(), f.owner, itemA, 10, "supplier delivery")
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if item.Quantity != 14 {
		t.Errorf("quantity = %d, want 14", item.Quantity)
	}
	if item.UpdatedAt.Before(before.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v < %v", item.UpdatedAt, before.UpdatedAt)
	}

	movements, _, err := f.moveRepo.GetMovements(context.Background(), f.storeID, models.MovementFilters{})
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	if len(movements) != 1 || movements[0].QuantityChanged != 10 || movements[0].MovementType != models.MovementTypeStockAdd {
		t.Fatalf("movements = %+v", movements)
	}
	if movements[0].Reason == nil || *movements[0].Reason != "supplier delivery" {
		t.Errorf("reason = %v", movements[0].Reason)
	}
}

func TestAddStock_Errors(t *testing.T) {
	f := newFixture(t)
	itemA := dbtest.SeedItem(t, f.db, f.storeID, "Spring M120", 4, "15.00", 5, 2)
	rival := f.otherStore(t)
	svc := f.stockService()
	ctx := context.Background()

	for _, amount := range []int{0, -3} {
		if _, err := svc.AddStock(ctx, f.owner, itemA, amount, ""); !errors.Is(err, ErrValidation) {
			t.Errorf("amount %d: err = %v, want ErrValidation", amount, err)
		}
	}
	if _, err := svc.AddStock(ctx, rival, itemA, 5, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("foreign store: err = %v, want ErrValidation", err)
	}
	if _, err := svc.AddStock(ctx, f.owner, 4242, 5, ""); !errors.Is(err, ErrStockItemNotFound) {
		t.Errorf("missing item: err = %v, want ErrStockItemNotFound", err)
	}
	for _, amount := range []int{math.MaxInt64, math.MaxInt32} {
		if _, err := svc.AddStock(ctx, f.owner, itemA, amount, ""); !errors.Is(err, ErrValidation) {
			t.Errorf("amount %d: err = %v, want ErrValidation", amount, err)
		}
	}
	if got := dbtest.Quantity(t, f.db, itemA); got != 4 {
		t.Errorf("quantity = %d, want 4", got)
	}
	if n := dbtest.Count(t, f.db, "stock_movements"); n != 0 {
		t.Errorf("stock_movements = %d, want 0", n)
	}

	full, err := svc.AddStock(ctx, f.owner, itemA, math.MaxInt32-4, "")
	if err != nil {
		t.Fatalf("filling to the maximum stock: %v", err)
	}
	if full.Quantity != math.MaxInt32 {
		t.Errorf("quantity = %d, want %d", full.Quantity, math.MaxInt32)
	}
}

func TestListAvailableItems(t *testing.T) {
	f := newFixture(t)
	dbtest.SeedItem(t, f.db, f.storeID, "Tracer Unit", 3, "45.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Empty Magazine", 0, "20.00", 5, 2)
	hidden := dbtest.SeedItem(t, f.db, f.storeID, "Discontinued Grip", 8, "10.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Battery 11.1v", 12, "30.00", 5, 2)
	rival := f.otherStore(t)
	dbtest.SeedItem(t, f.db, *rival.StoreID, "Another Store Item", 9, "1.00", 5, 2)
	svc := f.stockService()

	if _, err := svc.SetAvailability(context.Background(), f.owner, hidden, false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	items, err := svc.ListAvailableItems(context.Background(), f.owner)
	if err != nil {
		t.Fatalf("ListAvailableItems: %v", err)
	}
	want := []string{"Battery 11.1v", "Tracer Unit"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name || items[i].Quantity <= 0 || !items[i].IsAvailable {
			t.Errorf("items[%d] = %+v, want %s", i, items[i], name)
		}
	}
}

func TestListInventory_StatusFilter(t *testing.T) {
	f := newFixture(t)
	dbtest.SeedItem(t, f.db, f.storeID, "Normal Item", 6, "1.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Reorder Item", 5, "1.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Critical Item", 2, "1.00", 5, 2)
	dbtest.SeedItem(t, f.db, f.storeID, "Empty Item", 0, "1.00", 5, 2)
	svc := f.stockService()
	ctx := context.Background()

	all, err := svc.ListInventory(ctx, f.owner, "")
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	wantOrder := []string{"Critical Item", "Empty Item", "Reorder Item", "Normal Item"}
	for i, name := range wantOrder {
		if all[i].Name != name {
			t.Fatalf("order = %v, want %v", names(all), wantOrder)
		}
	}
	if all[1].Status != string(TierOutOfStock) {
		t.Errorf("empty item status = %s, want out_of_stock", all[1].Status)
	}

	critical, err := svc.ListInventory(ctx, f.owner, "critical")
	if err != nil {
		t.Fatalf("ListInventory(critical): %v", err)
	}
	if len(critical) != 2 {
		t.Errorf("critical filter returned %v, want critical and out_of_stock items", names(critical))
	}

	if _, err := svc.ListInventory(ctx, f.owner, "plenty"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: err = %v, want ErrValidation", err)
	}
}

func TestCreateAndUpdateItem(t *testing.T) {
	f := newFixture(t)
	svc := f.stockService()
	ctx := context.Background()
	brand := "Krytac"

	item, err := svc.CreateItem(ctx, f.owner, CreateStockItemRequest{
		Name:      "  Trident MK2  ",
		Brand:     &brand,
		Quantity:  3,
		UnitPrice: money("420.00"),
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Trident MK2" || item.ReorderLevel != defaultReorderLevel || item.CriticalLevel != defaultCriticalLevel {
		t.Errorf("created item = %+v", item)
	}

	view, err := svc.GetItem(ctx, f.owner, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if view.Status != string(TierReorder) {
		t.Errorf("status = %s, want reorder", view.Status)
	}

	reorder, critical := 2, 1
	updated, err := svc.UpdateItem(ctx, f.owner, item.ID, UpdateStockItemRequest{ReorderLevel: &reorder, CriticalLevel: &critical})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity != 3 || updated.ReorderLevel != 2 || updated.CriticalLevel != 1 {
		t.Errorf("updated item = %+v", updated)
	}

	bad := 3
	if _, err := svc.UpdateItem(ctx, f.owner, item.ID, UpdateStockItemRequest{CriticalLevel: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("critical > reorder: err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateItem(ctx, f.owner, CreateStockItemRequest{Name: "Cheap", UnitPrice: money("0.001")}); !errors.Is(err, ErrValidation) {
		t.Errorf("3 decimals: err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateItem(ctx, f.owner, CreateStockItemRequest{Name: "Gold Plated", UnitPrice: money("10000000000.00")}); !errors.Is(err, ErrValidation) {
		t.Errorf("price above column range: err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateItem(ctx, f.owner, CreateStockItemRequest{Name: "Warehouse", Quantity: math.MaxInt32 + 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("quantity above column range: err = %v, want ErrValidation", err)
	}
	if _, err := svc.GetItem(ctx, f.otherStore(t), item.ID); !errors.Is(err, ErrStockItemNotFound) {
		t.Errorf("foreign GetItem: err = %v, want ErrStockItemNotFound", err)
	}
}

func TestListMovements(t *testing.T) {
	f := newFixture(t)
	svc := f.stockService()
	ctx := context.Background()
	first := dbtest.SeedItem(t, f.db, f.storeID, "BB 0.25g", 3, "12.00", 5, 2)
	second := dbtest.SeedItem(t, f.db, f.storeID, "Green Gas", 1, "18.00", 5, 2)

	if _, err := svc.AddStock(ctx, f.owner, first, 5, ""); err != nil {
		t.Fatalf("AddStock first: %v", err)
	}
	if _, err := svc.AddStock(ctx, f.owner, second, 7, ""); err != nil {
		t.Fatalf("AddStock second: %v", err)
	}

	all, total, err := svc.ListMovements(ctx, f.owner, models.MovementFilters{})
	if err != nil {
		t.Fatalf("ListMovements: %v", err)
	}
	if total != 2 || len(all) != 2 || all[0].StockItemID != second {
		t.Fatalf("movements = %+v (total %d), want newest first", all, total)
	}

	onlyFirst, total, err := svc.ListMovements(ctx, f.owner, models.MovementFilters{StockItemID: &first})
	if err != nil {
		t.Fatalf("ListMovements by item: %v", err)
	}
	if total != 1 || onlyFirst[0].QuantityChanged != 5 {
		t.Errorf("filtered movements = %+v", onlyFirst)
	}

	bogus := "refund"
	if _, _, err := svc.ListMovements(ctx, f.owner, models.MovementFilters{MovementType: &bogus}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown type: err = %v, want ErrValidation", err)
	}
	if _, _, err := svc.ListMovements(ctx, models.Principal{UserID: 1, Role: models.RoleStoreOwner}, models.MovementFilters{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("no store: err = %v, want ErrForbidden", err)
	}
}
