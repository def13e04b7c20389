package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/finance"
)

func TestWriteReport(t *testing.T) {
	rows := []Row{
		{
			Product: domain.Product{
				Name: "Jasmine Rice", SKU: "GRO-0001", Category: "Groceries", Unit: "kg",
				PriceCents: 250, CostCents: 180, Stock: decimal.RequireFromString("45.5"),
			},
			Financials: finance.ProductFinancials{
				UnitsSold:    decimal.NewFromInt(20),
				RevenueCents: 5000, COGSCents: 3600, NetProfitCents: 1400,
				AssetValueCents: 8190, RetailValueCents: 11375,
			},
		},
		{
			Product: domain.Product{
				Name: "Whole Milk", SKU: "DAI-0001", Category: "Dairy", Unit: "pc",
				PriceCents: 325, CostCents: 240, Stock: decimal.NewFromInt(24),
			},
			Financials: finance.ProductFinancials{
				UnitsSold:    decimal.NewFromInt(5),
				RevenueCents: 1625, COGSCents: 1200, NetProfitCents: 425,
				AssetValueCents: 5760, RetailValueCents: 7800,
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, rows, "USD"); err != nil {
		t.Fatalf("write report: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue(sheetName, "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "Jasmine Rice" {
		t.Fatalf("A2 = %q, want Jasmine Rice", name)
	}

	// Total row sits one past the data rows.
	label, _ := f.GetCellValue(sheetName, "A4")
	if label != "TOTAL" {
		t.Fatalf("A4 = %q, want TOTAL", label)
	}
	revenue, _ := f.GetCellValue(sheetName, "J4", excelize.Options{RawCellValue: true})
	if revenue != "66.25" {
		t.Fatalf("total revenue cell = %q, want 66.25", revenue)
	}
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, nil, "EUR"); err != nil {
		t.Fatalf("write empty report: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty report produced no bytes")
	}
}
