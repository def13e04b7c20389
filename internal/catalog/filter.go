package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

// The catalog engine filters and sorts product snapshots for the inventory
// views. All functions return new slices and never modify their inputs.

type StockStatus string

const (
	StockAll StockStatus = "ALL"
	StockLow StockStatus = "LOW"
	StockOut StockStatus = "OUT"
	StockIn  StockStatus = "IN"
)

// ClassifyStock buckets a product by its stock against the minimum level.
// Every product lands in exactly one of OUT, LOW, IN.
func ClassifyStock(p domain.Product) StockStatus {
	switch {
	case p.Stock.IsZero():
		return StockOut
	case p.Stock.LessThanOrEqual(p.MinStockLevel):
		return StockLow
	default:
		return StockIn
	}
}

// Filter holds the AND-composed predicates of the inventory table.
type Filter struct {
	Search       string
	Category     string
	StockStatus  StockStatus
	ExpiryStatus ExpiryStatus
}

// Apply returns the products matching every predicate, preserving input
// order.
func Apply(products []domain.Product, f Filter, now time.Time) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if f.Category != "" && f.Category != "ALL" && p.Category != f.Category {
			continue
		}
		if f.StockStatus != "" && f.StockStatus != StockAll && ClassifyStock(p) != f.StockStatus {
			continue
		}
		if f.ExpiryStatus != "" && f.ExpiryStatus != ExpiryAll && ClassifyExpiry(p.StockExpiryDate, now) != f.ExpiryStatus {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

type SortField string

const (
	SortByName     SortField = "name"
	SortBySKU      SortField = "sku"
	SortByCategory SortField = "category"
	SortByPrice    SortField = "price"
	SortByStock    SortField = "stock"
	SortByExpiry   SortField = "stockExpiryDate"
	SortByCost     SortField = "cost"
	SortByMargin   SortField = "margin"
)

// Sort returns a sorted copy of the product list. The sort is stable, so
// products with equal keys keep their relative input order. String fields
// compare case-insensitively and margin is computed on the fly. Products
// without an expiry date sort after every dated product in both directions.
func Sort(products []domain.Product, field SortField, descending bool) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if field == SortByExpiry {
			// Missing dates pin to the end regardless of direction.
			if (a.StockExpiryDate == "") != (b.StockExpiryDate == "") {
				return a.StockExpiryDate != ""
			}
			if a.StockExpiryDate == "" {
				return false
			}
		}

		c := compareField(a, b, field)
		if descending {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

func compareField(a, b domain.Product, field SortField) int {
	switch field {
	case SortBySKU:
		return compareFold(a.SKU, b.SKU)
	case SortByCategory:
		return compareFold(a.Category, b.Category)
	case SortByPrice:
		return compareInt64(a.PriceCents, b.PriceCents)
	case SortByCost:
		return compareInt64(a.CostCents, b.CostCents)
	case SortByStock:
		return a.Stock.Cmp(b.Stock)
	case SortByExpiry:
		return strings.Compare(a.StockExpiryDate, b.StockExpiryDate)
	case SortByMargin:
		am, bm := a.Margin(), b.Margin()
		switch {
		case am < bm:
			return -1
		case am > bm:
			return 1
		default:
			return 0
		}
	default:
		return compareFold(a.Name, b.Name)
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
