package models

import (
	"time"
)

// SalesReportItem aggregates committed sales for one day.
type SalesReportItem struct {
	Date        string `json:"date" db:"sale_date"` // YYYY-MM-DD
	SalesCount  int    `json:"sales_count" db:"sales_count"`
	ItemsSold   int    `json:"items_sold" db:"items_sold"`
	TotalAmount Money  `json:"total_amount" db:"total_amount"`
}

// SalesReport is the sales summary for a date range.
type SalesReport struct {
	From        string            `json:"from"`
	To          string            `json:"to"`
	Days        []SalesReportItem `json:"days"`
	SalesCount  int               `json:"sales_count"`
	TotalAmount Money             `json:"total_amount"`
}

// InventoryReportItem is one row of the inventory report.
type InventoryReportItem struct {
	ItemID           int64      `json:"item_id"`
	ItemName         string     `json:"item_name"`
	Quantity         int        `json:"quantity"`
	ReorderLevel     int        `json:"reorder_level"`
	CriticalLevel    int        `json:"critical_level"`
	UnitPrice        NullMoney  `json:"unit_price"`
	StockValue       Money      `json:"stock_value"`
	LastMovementDate *time.Time `json:"last_movement_date,omitempty"`
	Status           string     `json:"status"`
}

// InventoryReport is the inventory report for one store.
type InventoryReport struct {
	Items           []InventoryReportItem `json:"items"`
	TierCounts      map[string]int        `json:"tier_counts"`
	TotalStockValue Money                 `json:"total_stock_value"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// ReportRequestParams holds common parameters for requesting reports.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	Status    string `form:"status"`
}
