package inventory

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id string, stock string, allowDecimal bool) domain.Product {
	return domain.Product{
		ID:           id,
		Name:         "Product " + id,
		Stock:        qty(stock),
		AllowDecimal: allowDecimal,
	}
}

func TestAdjustAddRemoveSet(t *testing.T) {
	p := product("prd-1", "10", true)

	cases := []struct {
		typ  domain.AdjustmentType
		qty  string
		want string
	}{
		{domain.AdjustmentAdd, "2.5", "12.5"},
		{domain.AdjustmentRemove, "4", "6"},
		{domain.AdjustmentSet, "0", "0"},
	}
	for _, tc := range cases {
		adj, err := Adjust(p, tc.typ, qty(tc.qty), "recount", "", "admin", testNow)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.typ, err)
		}
		if !adj.NewStock.Equal(qty(tc.want)) {
			t.Fatalf("%s: new stock = %s, want %s", tc.typ, adj.NewStock, tc.want)
		}
		if !adj.PreviousStock.Equal(p.Stock) {
			t.Fatalf("%s: previous stock = %s, want %s", tc.typ, adj.PreviousStock, p.Stock)
		}
	}
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	p := product("prd-1", "3", true)

	_, err := Adjust(p, domain.AdjustmentRemove, qty("5"), "shrinkage", "", "admin", testNow)
	if !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("err = %v, want ErrNegativeStock", err)
	}
}

func TestAdjustRejectsNegativeQuantity(t *testing.T) {
	p := product("prd-1", "3", true)

	_, err := Adjust(p, domain.AdjustmentAdd, qty("-1"), "recount", "", "admin", testNow)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestBulkAdjustClampsNegativeResultsToZero(t *testing.T) {
	products := []domain.Product{
		product("prd-1", "10", true),
		product("prd-2", "3", true),
	}

	adjustments, err := BulkAdjust(products, domain.AdjustmentRemove, qty("5"), "damage", "", "admin", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adjustments[0].NewStock.Equal(qty("5")) {
		t.Fatalf("prd-1 stock = %s, want 5", adjustments[0].NewStock)
	}
	if !adjustments[1].NewStock.Equal(qty("0")) {
		t.Fatalf("prd-2 stock = %s, want clamped to 0", adjustments[1].NewStock)
	}
}

func TestBulkAdjustRoundsForWholeUnitProducts(t *testing.T) {
	products := []domain.Product{
		product("prd-kg", "10", true),
		product("prd-pc", "10", false),
	}

	adjustments, err := BulkAdjust(products, domain.AdjustmentAdd, qty("2.6"), "restock", "", "admin", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adjustments[0].Quantity.Equal(qty("2.6")) {
		t.Fatalf("decimal product quantity = %s, want 2.6", adjustments[0].Quantity)
	}
	if !adjustments[1].Quantity.Equal(qty("3")) {
		t.Fatalf("whole-unit product quantity = %s, want rounded to 3", adjustments[1].Quantity)
	}
}

func TestBulkAdjustRejectsBadSharedQuantity(t *testing.T) {
	products := []domain.Product{product("prd-1", "10", true)}

	if _, err := BulkAdjust(products, domain.AdjustmentRemove, qty("0"), "x", "", "admin", testNow); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("REMOVE 0: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := BulkAdjust(products, domain.AdjustmentSet, qty("-1"), "x", "", "admin", testNow); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("SET -1: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := BulkAdjust(products, domain.AdjustmentSet, qty("0"), "clear", "", "admin", testNow); err != nil {
		t.Fatalf("SET 0: unexpected error %v", err)
	}
}

func TestBulkAdjustSharesBatchIDAndTimestamp(t *testing.T) {
	products := []domain.Product{
		product("prd-1", "1", true),
		product("prd-2", "2", true),
		product("prd-3", "3", true),
	}

	adjustments, err := BulkAdjust(products, domain.AdjustmentAdd, qty("1"), "restock", "note", "admin", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adjustments) != 3 {
		t.Fatalf("record count = %d, want 3", len(adjustments))
	}
	for _, adj := range adjustments[1:] {
		if adj.BatchID != adjustments[0].BatchID {
			t.Fatal("batch ids differ within one bulk operation")
		}
		if !adj.CreatedAt.Equal(adjustments[0].CreatedAt) {
			t.Fatal("timestamps differ within one bulk operation")
		}
	}
	if !strings.HasPrefix(adjustments[0].Notes, "[bulk]") {
		t.Fatalf("notes = %q, want bulk marker prefix", adjustments[0].Notes)
	}
}

func TestConvertProducesLinkedLegs(t *testing.T) {
	source := product("prd-sack", "5", true)
	target := product("prd-pack", "20", false)

	legs, err := Convert(source, target, qty("1"), qty("25"), "repack", "admin", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("leg count = %d, want 2", len(legs))
	}

	remove, add := legs[0], legs[1]
	if remove.Type != domain.AdjustmentRemove || add.Type != domain.AdjustmentAdd {
		t.Fatalf("leg types = %s/%s, want REMOVE/ADD", remove.Type, add.Type)
	}
	if remove.BatchID != add.BatchID {
		t.Fatal("conversion legs do not share a batch id")
	}
	if !remove.CreatedAt.Equal(add.CreatedAt) {
		t.Fatal("conversion legs do not share a timestamp")
	}
	if !remove.NewStock.Equal(qty("4")) {
		t.Fatalf("source stock = %s, want 4", remove.NewStock)
	}
	if !add.NewStock.Equal(qty("45")) {
		t.Fatalf("target stock = %s, want 45", add.NewStock)
	}
	if !strings.Contains(remove.Notes, target.Name) || !strings.Contains(add.Notes, source.Name) {
		t.Fatalf("legs do not cross-reference: %q / %q", remove.Notes, add.Notes)
	}
}

func TestConvertRejections(t *testing.T) {
	source := product("prd-sack", "5", true)
	target := product("prd-pack", "20", false)

	if _, err := Convert(source, source, qty("1"), qty("25"), "", "admin", testNow); !errors.Is(err, ErrSameProduct) {
		t.Fatalf("same product: err = %v, want ErrSameProduct", err)
	}
	if _, err := Convert(source, target, qty("6"), qty("25"), "", "admin", testNow); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("insufficient: err = %v, want ErrInsufficientStock", err)
	}
	if _, err := Convert(source, target, qty("0"), qty("25"), "", "admin", testNow); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero source qty: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := Convert(source, target, qty("1"), qty("-2"), "", "admin", testNow); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative target qty: err = %v, want ErrInvalidQuantity", err)
	}
}
