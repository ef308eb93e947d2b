package models

import (
	"time"
)

// StockItem is one inventory line of a store.
type StockItem struct {
	ID            int64     `json:"id" db:"id"`
	StoreID       int64     `json:"store_id" db:"store_id"`
	Name          string    `json:"name" db:"name"`
	Brand         *string   `json:"brand,omitempty" db:"brand"`
	Model         *string   `json:"model,omitempty" db:"model"`
	Quantity      int       `json:"quantity" db:"quantity"`
	UnitPrice     NullMoney `json:"unit_price" db:"unit_price"`
	ReorderLevel  int       `json:"reorder_level" db:"reorder_level"`
	CriticalLevel int       `json:"critical_level" db:"critical_level"`
	IsAvailable   bool      `json:"is_available" db:"is_available"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// StockItemView is a StockItem with its derived stock tier.
type StockItemView struct {
	StockItem
	Status string `json:"status"`
}

// Stock movement types.
const (
	MovementTypeStockAdd = "stock_add"
	MovementTypeSale     = "sale"
)

// StockMovement is an append-only audit record of one quantity change.
type StockMovement struct {
	ID              int64     `json:"id" db:"id"`
	StoreID         int64     `json:"store_id" db:"store_id"`
	StockItemID     int64     `json:"stock_item_id" db:"stock_item_id"`
	ActorID         int64     `json:"actor_id" db:"actor_id"`
	MovementType    string    `json:"movement_type" db:"movement_type"`
	QuantityChanged int       `json:"quantity_changed" db:"quantity_changed"`
	SaleID          *int64    `json:"sale_id,omitempty" db:"sale_id"`
	Reason          *string   `json:"reason,omitempty" db:"reason"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	ItemName        string    `json:"item_name" db:"item_name"`
}

// MovementFilters narrows a stock movement listing.
type MovementFilters struct {
	StockItemID  *int64
	MovementType *string
	Page         int
	PageSize     int
}
