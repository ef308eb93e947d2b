package services

import (
	"fmt"
	"sort"
	"strings"

	"aerozone_backend/internal/models"
)

// Tier is the stock status derived from quantity and the item's thresholds.
type Tier string

const (
	TierOutOfStock Tier = "out_of_stock" // quantity == 0, a refinement of TierCritical
	TierCritical   Tier = "critical"
	TierReorder    Tier = "reorder"
	TierNormal     Tier = "normal"
)

// Classify maps a quantity onto the three base tiers. Boundaries are inclusive:
// quantity <= criticalLevel is critical, quantity <= reorderLevel is reorder.
func Classify(quantity, reorderLevel, criticalLevel int) Tier {
	switch {
	case quantity <= criticalLevel:
		return TierCritical
	case quantity <= reorderLevel:
		return TierReorder
	default:
		return TierNormal
	}
}

// ClassifyItem classifies an item and refines critical items with no stock to TierOutOfStock.
func ClassifyItem(item models.StockItem) Tier {
	if item.Quantity <= 0 {
		return TierOutOfStock
	}
	return Classify(item.Quantity, item.ReorderLevel, item.CriticalLevel)
}

// ParseTier parses a status filter. The empty string means no filter.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TierOutOfStock, TierCritical, TierReorder, TierNormal:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown stock status %q (want out_of_stock, critical, reorder or normal)", ErrValidation, s)
}

// Base collapses the out-of-stock refinement into critical.
func (t Tier) Base() Tier {
	if t == TierOutOfStock {
		return TierCritical
	}
	return t
}

// Matches reports whether an item of tier t passes the status filter.
// A critical filter includes out-of-stock items; an empty filter matches everything.
func (t Tier) Matches(filter Tier) bool {
	switch filter {
	case "":
		return true
	case TierCritical:
		return t.Base() == TierCritical
	default:
		return t == filter
	}
}

func (t Tier) rank() int {
	switch t.Base() {
	case TierCritical:
		return 0
	case TierReorder:
		return 1
	default:
		return 2
	}
}

// SortByTier orders items critical -> reorder -> normal, then by name.
func SortByTier(items []models.StockItemView) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := Tier(items[i].Status).rank(), Tier(items[j].Status).rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].Name < items[j].Name
	})
}
