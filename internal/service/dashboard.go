package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/catalog"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/export"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/finance"
)

const trendDays = 7

// Dashboard is the aggregate payload behind the landing view. Everything in it
// is recomputed from history on demand.
type Dashboard struct {
	GrossRevenueCents     int64                   `json:"gross_revenue_cents"`
	TotalRefundsCents     int64                   `json:"total_refunds_cents"`
	NetRevenueCents       int64                   `json:"net_revenue_cents"`
	NetProfitCents        int64                   `json:"net_profit_cents"`
	SaleCount             int                     `json:"sale_count"`
	ReturnCount           int                     `json:"return_count"`
	InventoryAssetCents   int64                   `json:"inventory_asset_cents"`
	InventoryRetailCents  int64                   `json:"inventory_retail_cents"`
	LowStockProducts      []domain.Product        `json:"low_stock_products"`
	ExpiringSoonProducts  []domain.Product        `json:"expiring_soon_products"`
	Trend                 []finance.DayBucket     `json:"trend"`
	CurrentMonth          []finance.DayBucket     `json:"current_month"`
	CategorySales         []finance.CategoryValue `json:"category_sales"`
	CurrencySymbol        string                  `json:"currency_symbol"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var assetCents, retailCents int64
	lowStock := make([]domain.Product, 0)
	expiringSoon := make([]domain.Product, 0)
	for _, p := range products {
		fin := finance.ComputeProductFinancials(p, nil, nil)
		assetCents += fin.AssetValueCents
		retailCents += fin.RetailValueCents
		if status := catalog.ClassifyStock(p); status == catalog.StockLow || status == catalog.StockOut {
			lowStock = append(lowStock, p)
		}
		if catalog.ClassifyExpiry(p.StockExpiryDate, now) == catalog.ExpirySoon {
			expiringSoon = append(expiringSoon, p)
		}
	}

	return &Dashboard{
		GrossRevenueCents:    finance.GrossRevenueCents(sales),
		TotalRefundsCents:    finance.TotalRefundsCents(returns),
		NetRevenueCents:      finance.NetRevenueCents(sales, returns),
		NetProfitCents:       finance.NetProfitCents(sales, returns),
		SaleCount:            len(sales),
		ReturnCount:          len(returns),
		InventoryAssetCents:  assetCents,
		InventoryRetailCents: retailCents,
		LowStockProducts:     lowStock,
		ExpiringSoonProducts: expiringSoon,
		Trend:                finance.DailyTrend(sales, returns, trendDays, now),
		CurrentMonth:         finance.CurrentMonthDaily(sales, returns, now),
		CategorySales:        finance.CategoryRollup(sales, returns, products, now),
		CurrencySymbol:       domain.CurrencySymbol(settings.CurrencyCode),
	}, nil
}

// ProductFinancials recomputes the per-product money view from full history.
func (s *Service) ProductFinancials(ctx context.Context, productID string) (*finance.ProductFinancials, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return nil, err
	}
	fin := finance.ComputeProductFinancials(*product, sales, returns)
	return &fin, nil
}

// ExportInventoryReport writes the xlsx valuation report, rows grouped by
// category and alphabetical within it.
func (s *Service) ExportInventoryReport(ctx context.Context, w io.Writer) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return err
	}
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})

	rows := make([]export.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, export.Row{
			Product:    p,
			Financials: finance.ComputeProductFinancials(p, sales, returns),
		})
	}
	return export.WriteReport(w, rows, settings.CurrencyCode)
}
