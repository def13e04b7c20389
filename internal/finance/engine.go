package finance

import (
	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

// The reconciliation engine derives monetary aggregates from immutable sale
// and return history. Every function here is pure: inputs are read-only
// snapshots and the same inputs always produce the same outputs.

// GrossRevenueCents sums the total amount of every sale.
func GrossRevenueCents(sales []domain.Sale) int64 {
	var total int64
	for _, sale := range sales {
		total += sale.TotalCents
	}
	return total
}

// TotalRefundsCents sums the refund amount of every return.
func TotalRefundsCents(returns []domain.ReturnTransaction) int64 {
	var total int64
	for _, ret := range returns {
		total += ret.RefundCents
	}
	return total
}

// NetRevenueCents is gross revenue minus total refunds.
func NetRevenueCents(sales []domain.Sale, returns []domain.ReturnTransaction) int64 {
	return GrossRevenueCents(sales) - TotalRefundsCents(returns)
}

// GrossProfitCents sums the recorded profit of every sale.
func GrossProfitCents(sales []domain.Sale) int64 {
	var total int64
	for _, sale := range sales {
		total += sale.ProfitCents
	}
	return total
}

// ProfitLostFromReturnsCents computes how much recorded profit the given
// returns reverse. Each return resolves its originating sale by id; a missing
// sale or a return line with no matching sale line contributes zero. That is
// a recoverable data-integrity gap, not an error.
func ProfitLostFromReturnsCents(returns []domain.ReturnTransaction, sales []domain.Sale) int64 {
	index := indexSalesByID(sales)
	lost := decimal.Zero
	for _, ret := range returns {
		lost = lost.Add(profitReversal(ret, index))
	}
	return lost.Round(0).IntPart()
}

// NetProfitCents is the recorded sale profit minus the profit reversed by
// returns.
func NetProfitCents(sales []domain.Sale, returns []domain.ReturnTransaction) int64 {
	return GrossProfitCents(sales) - ProfitLostFromReturnsCents(returns, sales)
}

// ProductFinancials is the per-product snapshot used by the inventory table
// and the exported report.
type ProductFinancials struct {
	ProductID           string          `json:"product_id"`
	UnitsSold           decimal.Decimal `json:"units_sold"`
	RevenueCents        int64           `json:"revenue_cents"`
	COGSCents           int64           `json:"cogs_cents"`
	UnitsReturned       decimal.Decimal `json:"units_returned"`
	RefundedCents       int64           `json:"refunded_cents"`
	ProfitReversalCents int64           `json:"profit_reversal_cents"`
	NetProfitCents      int64           `json:"net_profit_cents"`
	AssetValueCents     int64           `json:"asset_value_cents"`
	RetailValueCents    int64           `json:"retail_value_cents"`
}

// ComputeProductFinancials scans the full sale and return history for line
// items matching the product. It holds no memo state; callers may invoke it
// once per product per render or export.
func ComputeProductFinancials(product domain.Product, sales []domain.Sale, returns []domain.ReturnTransaction) ProductFinancials {
	index := indexSalesByID(sales)

	unitsSold := decimal.Zero
	revenue := decimal.Zero
	cogs := decimal.Zero
	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.ProductID != product.ID {
				continue
			}
			unitsSold = unitsSold.Add(item.Quantity)
			revenue = revenue.Add(decimal.NewFromInt(item.PriceCentsAtSale).Mul(item.Quantity))
			cogs = cogs.Add(decimal.NewFromInt(item.CostCentsAtSale).Mul(item.Quantity))
		}
	}

	unitsReturned := decimal.Zero
	var refunded int64
	reversal := decimal.Zero
	for _, ret := range returns {
		original, found := index[ret.OriginalSaleID]
		for _, item := range ret.Items {
			if item.ProductID != product.ID {
				continue
			}
			unitsReturned = unitsReturned.Add(item.Quantity)
			refunded += item.RefundCents
			if !found {
				continue
			}
			if line, ok := findSaleLine(original, item.ProductID); ok {
				unitProfit := decimal.NewFromInt(line.PriceCentsAtSale - line.CostCentsAtSale)
				reversal = reversal.Add(unitProfit.Mul(item.Quantity))
			}
		}
	}

	revenueCents := revenue.Round(0).IntPart()
	cogsCents := cogs.Round(0).IntPart()
	reversalCents := reversal.Round(0).IntPart()

	return ProductFinancials{
		ProductID:           product.ID,
		UnitsSold:           unitsSold,
		RevenueCents:        revenueCents,
		COGSCents:           cogsCents,
		UnitsReturned:       unitsReturned,
		RefundedCents:       refunded,
		ProfitReversalCents: reversalCents,
		NetProfitCents:      (revenueCents - cogsCents) - reversalCents,
		AssetValueCents:     decimal.NewFromInt(product.CostCents).Mul(product.Stock).Round(0).IntPart(),
		RetailValueCents:    decimal.NewFromInt(product.PriceCents).Mul(product.Stock).Round(0).IntPart(),
	}
}

func indexSalesByID(sales []domain.Sale) map[string]domain.Sale {
	index := make(map[string]domain.Sale, len(sales))
	for _, sale := range sales {
		index[sale.ID] = sale
	}
	return index
}

func findSaleLine(sale domain.Sale, productID string) (domain.SaleItem, bool) {
	for _, item := range sale.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.SaleItem{}, false
}

// profitReversal returns the decimal profit reversed by one return, resolved
// against the indexed sale history.
func profitReversal(ret domain.ReturnTransaction, index map[string]domain.Sale) decimal.Decimal {
	original, ok := index[ret.OriginalSaleID]
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, item := range ret.Items {
		line, ok := findSaleLine(original, item.ProductID)
		if !ok {
			continue
		}
		unitProfit := decimal.NewFromInt(line.PriceCentsAtSale - line.CostCentsAtSale)
		total = total.Add(unitProfit.Mul(item.Quantity))
	}
	return total
}
