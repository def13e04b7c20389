package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

// DayBucket is one day of the sales trend. SaleCount counts sale transactions
// only; returns never contribute to foot traffic.
type DayBucket struct {
	Date        string `json:"date"`
	GrossCents  int64  `json:"gross_cents"`
	RefundCents int64  `json:"refund_cents"`
	ProfitCents int64  `json:"profit_cents"`
	SaleCount   int    `json:"sale_count"`
}

const dayKeyLayout = "2006-01-02"

// DailyTrend partitions sales and returns into local calendar-day buckets for
// the trailing window ending at now. A return is bucketed by its own
// timestamp but resolves its originating sale against the entire history,
// since a return can reference a sale from a different period.
func DailyTrend(sales []domain.Sale, returns []domain.ReturnTransaction, days int, now time.Time) []DayBucket {
	if days < 1 {
		days = 7
	}
	start := localMidnight(now).AddDate(0, 0, -(days - 1))
	return bucketRange(sales, returns, start, days, now.Location())
}

// CurrentMonthDaily breaks the current calendar month down per day, from the
// first of the month through today. The day count is calendar arithmetic, not
// duration division: a DST transition makes the month's wall-clock span fall
// short of N*24h and would truncate today's bucket.
func CurrentMonthDaily(sales []domain.Sale, returns []domain.ReturnTransaction, now time.Time) []DayBucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return bucketRange(sales, returns, first, now.Day(), now.Location())
}

func bucketRange(sales []domain.Sale, returns []domain.ReturnTransaction, start time.Time, days int, loc *time.Location) []DayBucket {
	index := indexSalesByID(sales)

	buckets := make([]DayBucket, days)
	position := make(map[string]int, days)
	for i := range buckets {
		key := start.AddDate(0, 0, i).Format(dayKeyLayout)
		buckets[i] = DayBucket{Date: key}
		position[key] = i
	}

	for _, sale := range sales {
		i, ok := position[sale.CreatedAt.In(loc).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		buckets[i].GrossCents += sale.TotalCents
		buckets[i].ProfitCents += sale.ProfitCents
		buckets[i].SaleCount++
	}

	for _, ret := range returns {
		i, ok := position[ret.CreatedAt.In(loc).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		buckets[i].RefundCents += ret.RefundCents
		buckets[i].ProfitCents -= profitReversal(ret, index).Round(0).IntPart()
	}

	return buckets
}

// CategoryValue is one slice of the current-month category rollup.
type CategoryValue struct {
	Category   string `json:"category"`
	ValueCents int64  `json:"value_cents"`
}

const uncategorized = "Uncategorized"

// CategoryRollup attributes current-month sale item value to the product's
// category and subtracts current-month return value at the original sale
// price. Categories that net out at or below zero are dropped; the rest are
// sorted descending by value.
func CategoryRollup(sales []domain.Sale, returns []domain.ReturnTransaction, products []domain.Product, now time.Time) []CategoryValue {
	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		categoryByProduct[p.ID] = p.Category
	}
	categoryOf := func(productID string) string {
		if c := categoryByProduct[productID]; c != "" {
			return c
		}
		return uncategorized
	}

	index := indexSalesByID(sales)
	totals := make(map[string]decimal.Decimal)

	for _, sale := range sales {
		if !sameMonth(sale.CreatedAt, now) {
			continue
		}
		for _, item := range sale.Items {
			cat := categoryOf(item.ProductID)
			value := decimal.NewFromInt(item.PriceCentsAtSale).Mul(item.Quantity)
			totals[cat] = totals[cat].Add(value)
		}
	}

	for _, ret := range returns {
		if !sameMonth(ret.CreatedAt, now) {
			continue
		}
		original, ok := index[ret.OriginalSaleID]
		if !ok {
			continue
		}
		for _, item := range ret.Items {
			line, ok := findSaleLine(original, item.ProductID)
			if !ok {
				continue
			}
			cat := categoryOf(item.ProductID)
			value := decimal.NewFromInt(line.PriceCentsAtSale).Mul(item.Quantity)
			totals[cat] = totals[cat].Sub(value)
		}
	}

	rollup := make([]CategoryValue, 0, len(totals))
	for cat, value := range totals {
		cents := value.Round(0).IntPart()
		if cents <= 0 {
			continue
		}
		rollup = append(rollup, CategoryValue{Category: cat, ValueCents: cents})
	}

	sort.Slice(rollup, func(i, j int) bool {
		if rollup[i].ValueCents == rollup[j].ValueCents {
			return rollup[i].Category < rollup[j].Category
		}
		return rollup[i].ValueCents > rollup[j].ValueCents
	})
	return rollup
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameMonth(t time.Time, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}
