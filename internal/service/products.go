package service

import (
	"context"
	"strings"
	"time"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/catalog"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/xid"
)

// ProductQuery bundles the list filters and sort of the inventory table.
type ProductQuery struct {
	Filter     catalog.Filter
	SortBy     catalog.SortField
	Descending bool
}

func (s *Service) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	products = catalog.Apply(products, q.Filter, now)
	if q.SortBy != "" {
		products = catalog.Sort(products, q.SortBy, q.Descending)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductSaveRequest) (*domain.Product, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	product := productFromRequest(req)
	product.ID = xid.New("prd")

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", created.ID).Str("sku", created.SKU).Msg("product created")
	return created, nil
}

// UpdateProduct saves the product and appends a price history entry for every
// price or cost change, attributed to the acting user.
func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductSaveRequest) (*domain.Product, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product := productFromRequest(req)
	product.ID = existing.ID
	product.Stock = existing.Stock

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.recordPriceChange(ctx, existing.ID, domain.PriceChangePrice, existing.PriceCents, updated.PriceCents, now)
	s.recordPriceChange(ctx, existing.ID, domain.PriceChangeCost, existing.CostCents, updated.CostCents, now)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Str("user", actorName(ctx)).Msg("product deleted")
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	categories := make([]string, 0)
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	return categories, nil
}

func (s *Service) ListPriceHistory(ctx context.Context, productID string, limit int) ([]domain.PriceHistory, error) {
	return s.repo.ListPriceHistory(ctx, productID, limit)
}

func (s *Service) recordPriceChange(ctx context.Context, productID string, kind domain.PriceChangeKind, oldCents, newCents int64, now time.Time) {
	if oldCents == newCents {
		return
	}
	entry := domain.PriceHistory{
		ID:        xid.New("prc"),
		ProductID: productID,
		Kind:      kind,
		OldCents:  oldCents,
		NewCents:  newCents,
		ChangedBy: actorName(ctx),
		CreatedAt: now,
	}
	if err := s.repo.AppendPriceHistory(ctx, entry); err != nil {
		// History is advisory; the product update already landed.
		s.log.Warn().Err(err).Str("product_id", productID).Msg("price history append failed")
	}
}

func productFromRequest(req domain.ProductSaveRequest) domain.Product {
	return domain.Product{
		Name:            strings.TrimSpace(req.Name),
		SKU:             strings.TrimSpace(req.SKU),
		Category:        strings.TrimSpace(req.Category),
		Unit:            req.Unit,
		PriceCents:      req.PriceCents,
		CostCents:       req.CostCents,
		Stock:           req.Stock,
		MinStockLevel:   req.MinStockLevel,
		StockExpiryDate: req.StockExpiryDate,
		AllowDecimal:    req.AllowDecimal,
	}
}
