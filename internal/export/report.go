// Package export renders the inventory valuation report as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/finance"
)

const sheetName = "Inventory Report"

var headers = []string{
	"Product", "SKU", "Category", "Unit", "Stock",
	"Price", "Cost", "Margin",
	"Units Sold", "Revenue", "COGS",
	"Units Returned", "Refunded", "Net Profit",
	"Asset Value", "Retail Value",
}

// Row pairs a product with its computed financials. Callers pass rows already
// sorted the way the report should read, usually grouped by category.
type Row struct {
	Product    domain.Product
	Financials finance.ProductFinancials
}

// WriteReport renders the rows plus a grand total line and writes the workbook
// to w. Money cells carry a two-decimal currency format in the store currency.
func WriteReport(w io.Writer, rows []Row, currencyCode string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	moneyFormat := fmt.Sprintf(`"%s"#,##0.00`, domain.CurrencySymbol(currencyCode))
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}
	percentFormat := "0.00%"
	percentStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFormat})
	if err != nil {
		return fmt.Errorf("percent style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFormat,
	})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	for col, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	var totalRevenue, totalCOGS, totalRefunded, totalNetProfit, totalAsset, totalRetail int64

	for i, row := range rows {
		r := i + 2
		p := row.Product
		fin := row.Financials

		values := []any{
			p.Name, p.SKU, p.Category, p.Unit, stockValue(p),
			cents(p.PriceCents), cents(p.CostCents), p.Margin(),
			quantityValue(fin.UnitsSold), cents(fin.RevenueCents), cents(fin.COGSCents),
			quantityValue(fin.UnitsReturned), cents(fin.RefundedCents), cents(fin.NetProfitCents),
			cents(fin.AssetValueCents), cents(fin.RetailValueCents),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}

		first, _ := excelize.CoordinatesToCellName(6, r)
		last, _ := excelize.CoordinatesToCellName(len(headers), r)
		if err := f.SetCellStyle(sheetName, first, last, moneyStyle); err != nil {
			return fmt.Errorf("style row %d: %w", r, err)
		}
		marginCell, _ := excelize.CoordinatesToCellName(8, r)
		if err := f.SetCellStyle(sheetName, marginCell, marginCell, percentStyle); err != nil {
			return fmt.Errorf("style margin %d: %w", r, err)
		}

		totalRevenue += fin.RevenueCents
		totalCOGS += fin.COGSCents
		totalRefunded += fin.RefundedCents
		totalNetProfit += fin.NetProfitCents
		totalAsset += fin.AssetValueCents
		totalRetail += fin.RetailValueCents
	}

	totalRow := len(rows) + 2
	totals := map[int]any{
		1:  "TOTAL",
		10: cents(totalRevenue),
		11: cents(totalCOGS),
		13: cents(totalRefunded),
		14: cents(totalNetProfit),
		15: cents(totalAsset),
		16: cents(totalRetail),
	}
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col, totalRow)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
	}
	firstTotal, _ := excelize.CoordinatesToCellName(1, totalRow)
	lastTotal, _ := excelize.CoordinatesToCellName(len(headers), totalRow)
	if err := f.SetCellStyle(sheetName, firstTotal, lastTotal, totalStyle); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("set widths: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", lastColLetter(), 14); err != nil {
		return fmt.Errorf("set widths: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cents(v int64) float64 {
	return float64(v) / 100
}

func stockValue(p domain.Product) float64 {
	f, _ := p.Stock.Float64()
	return f
}

func quantityValue(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func lastColLetter() string {
	name, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return name[:1]
}
