package finance

import (
	"testing"
	"time"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

func TestDailyTrendBucketsByLocalDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		{ID: "sal-1", CreatedAt: now.AddDate(0, 0, -2), TotalCents: 1000, ProfitCents: 400},
		{ID: "sal-2", CreatedAt: now.AddDate(0, 0, -2), TotalCents: 500, ProfitCents: 200},
		{ID: "sal-old", CreatedAt: now.AddDate(0, 0, -10), TotalCents: 9999, ProfitCents: 9999},
	}

	trend := DailyTrend(sales, nil, 7, now)

	if len(trend) != 7 {
		t.Fatalf("bucket count = %d, want 7", len(trend))
	}
	if trend[6].Date != "2026-08-31" {
		t.Fatalf("last bucket = %s, want 2026-08-31", trend[6].Date)
	}
	twoDaysAgo := trend[4]
	if twoDaysAgo.Date != "2026-08-29" {
		t.Fatalf("bucket date = %s, want 2026-08-29", twoDaysAgo.Date)
	}
	if twoDaysAgo.GrossCents != 1500 || twoDaysAgo.SaleCount != 2 {
		t.Fatalf("bucket = %+v, want gross 1500 over 2 sales", twoDaysAgo)
	}
	for _, b := range trend {
		if b.GrossCents == 9999 {
			t.Fatal("sale outside window leaked into trend")
		}
	}
}

func TestTrendReturnBucketedByReturnDateResolvesOldSale(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	// Sale happened long before the window; its return happens inside it.
	sales := []domain.Sale{
		{
			ID:        "sal-old",
			CreatedAt: now.AddDate(0, -2, 0),
			Items: []domain.SaleItem{
				{ProductID: "prd-a", Quantity: qty("2"), PriceCentsAtSale: 500, CostCentsAtSale: 300},
			},
			TotalCents:  1000,
			ProfitCents: 400,
		},
	}
	returns := []domain.ReturnTransaction{
		{
			ID:             "ret-1",
			OriginalSaleID: "sal-old",
			CreatedAt:      now.AddDate(0, 0, -1),
			Items: []domain.ReturnItem{
				{ProductID: "prd-a", Quantity: qty("2"), RefundCents: 1000},
			},
			RefundCents: 1000,
		},
	}

	trend := DailyTrend(sales, returns, 7, now)

	yesterday := trend[5]
	if yesterday.RefundCents != 1000 {
		t.Fatalf("refund = %d, want 1000", yesterday.RefundCents)
	}
	if yesterday.ProfitCents != -400 {
		t.Fatalf("profit = %d, want -400 from reversal of an out-of-window sale", yesterday.ProfitCents)
	}
}

func TestCurrentMonthDailyRunsFromFirstToToday(t *testing.T) {
	now := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	buckets := CurrentMonthDaily(nil, nil, now)

	if len(buckets) != 15 {
		t.Fatalf("bucket count = %d, want 15", len(buckets))
	}
	if buckets[0].Date != "2026-08-01" || buckets[14].Date != "2026-08-15" {
		t.Fatalf("range = %s..%s, want 2026-08-01..2026-08-15", buckets[0].Date, buckets[14].Date)
	}
}

func TestCurrentMonthDailyCoversDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// March 2026 loses an hour to DST; today's bucket must still exist.
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, loc)
	sales := []domain.Sale{
		{ID: "sal-today", CreatedAt: now.Add(-time.Hour), TotalCents: 700, ProfitCents: 300},
	}

	buckets := CurrentMonthDaily(sales, nil, now)

	if len(buckets) != 31 {
		t.Fatalf("bucket count = %d, want 31", len(buckets))
	}
	last := buckets[30]
	if last.Date != "2026-03-31" {
		t.Fatalf("last bucket = %s, want 2026-03-31", last.Date)
	}
	if last.GrossCents != 700 || last.SaleCount != 1 {
		t.Fatalf("today's bucket = %+v, want the morning sale in it", last)
	}
}

func TestCategoryRollup(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "prd-a", Category: "Dairy"},
		{ID: "prd-b", Category: "Beverages"},
		{ID: "prd-c"},
	}
	sales := []domain.Sale{
		{
			ID:        "sal-1",
			CreatedAt: now.AddDate(0, 0, -3),
			Items: []domain.SaleItem{
				{ProductID: "prd-a", Quantity: qty("2"), PriceCentsAtSale: 500},
				{ProductID: "prd-b", Quantity: qty("1"), PriceCentsAtSale: 300},
				{ProductID: "prd-c", Quantity: qty("1"), PriceCentsAtSale: 250},
			},
		},
		{
			// Previous month; must not contribute.
			ID:        "sal-old",
			CreatedAt: now.AddDate(0, -1, 0),
			Items: []domain.SaleItem{
				{ProductID: "prd-a", Quantity: qty("100"), PriceCentsAtSale: 500},
			},
		},
	}
	returns := []domain.ReturnTransaction{
		{
			ID:             "ret-1",
			OriginalSaleID: "sal-1",
			CreatedAt:      now.AddDate(0, 0, -1),
			Items: []domain.ReturnItem{
				// Fully reverses the Beverages value; the category drops out.
				{ProductID: "prd-b", Quantity: qty("1")},
			},
		},
	}

	rollup := CategoryRollup(sales, returns, products, now)

	if len(rollup) != 2 {
		t.Fatalf("rollup size = %d, want 2: %+v", len(rollup), rollup)
	}
	if rollup[0].Category != "Dairy" || rollup[0].ValueCents != 1000 {
		t.Fatalf("top slice = %+v, want Dairy 1000", rollup[0])
	}
	if rollup[1].Category != "Uncategorized" || rollup[1].ValueCents != 250 {
		t.Fatalf("second slice = %+v, want Uncategorized 250", rollup[1])
	}
}
