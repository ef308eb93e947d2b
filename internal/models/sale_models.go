package models

import (
	"time"
)

// SaleTransaction is the header of one committed point-of-sale event.
type SaleTransaction struct {
	ID            int64      `json:"id" db:"id"`
	StoreID       int64      `json:"store_id" db:"store_id"`
	CustomerName  string     `json:"customer_name" db:"customer_name"`
	CustomerPhone *string    `json:"customer_phone,omitempty" db:"customer_phone"`
	CustomerEmail *string    `json:"customer_email,omitempty" db:"customer_email"`
	TotalAmount   Money      `json:"total_amount" db:"total_amount"`
	CashReceived  Money      `json:"cash_received" db:"cash_received"`
	ChangeAmount  Money      `json:"change_amount" db:"change_amount"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	CreatedBy     int64      `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	Lines         []SaleLine `json:"lines,omitempty" db:"-"`
}

// SaleLine is one item of a sale. ItemName and UnitPrice are frozen at sale time.
type SaleLine struct {
	ID          int64  `json:"id" db:"id"`
	SaleID      int64  `json:"sale_id" db:"sale_id"`
	StockItemID int64  `json:"stock_item_id" db:"stock_item_id"`
	ItemName    string `json:"item_name" db:"item_name"`
	Quantity    int    `json:"quantity" db:"quantity"`
	UnitPrice   Money  `json:"unit_price" db:"unit_price"`
	TotalPrice  Money  `json:"total_price" db:"total_price"`
}

// SaleFilters narrows a sale listing. From is inclusive, To is exclusive.
type SaleFilters struct {
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
