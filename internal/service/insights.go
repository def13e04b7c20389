package service

import (
	"context"
	"encoding/json"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/advisory"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/catalog"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/finance"
)

// The advisory endpoints never fail: provider errors are logged and answered
// with a deterministic fallback so the UI always has something to show.

func (s *Service) ProductDescription(ctx context.Context, productID string) (string, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return "", err
	}

	key := "insight:description:" + product.ID
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	text, err := s.advisor.ProductDescription(ctx, *product)
	if err != nil {
		s.log.Warn().Err(err).Str("product_id", product.ID).Msg("description generation failed, using fallback")
		return advisory.FallbackDescription, nil
	}
	s.cache.Set(ctx, key, text, s.insightTTL)
	return text, nil
}

func (s *Service) BusinessInsights(ctx context.Context) (string, error) {
	key := "insight:business"
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	snapshot, err := s.businessSnapshot(ctx)
	if err != nil {
		return "", err
	}
	text, err := s.advisor.BusinessInsights(ctx, snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("insight generation failed, using fallback")
		return advisory.FallbackInsights, nil
	}
	s.cache.Set(ctx, key, text, s.insightTTL)
	return text, nil
}

func (s *Service) ProductSuggestions(ctx context.Context) ([]domain.ProductSuggestion, error) {
	key := "insight:suggestions"
	if cached, ok := s.cache.Get(ctx, key); ok {
		var suggestions []domain.ProductSuggestion
		if json.Unmarshal([]byte(cached), &suggestions) == nil {
			return suggestions, nil
		}
	}

	snapshot, err := s.businessSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.advisor.ProductSuggestions(ctx, snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("suggestion generation failed, using fallback")
		return advisory.FallbackSuggestions(snapshot), nil
	}
	if encoded, err := json.Marshal(suggestions); err == nil {
		s.cache.Set(ctx, key, string(encoded), s.insightTTL)
	}
	return suggestions, nil
}

func (s *Service) businessSnapshot(ctx context.Context) (domain.BusinessSnapshot, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return domain.BusinessSnapshot{}, err
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return domain.BusinessSnapshot{}, err
	}

	lowStock := make([]string, 0)
	for _, p := range products {
		if status := catalog.ClassifyStock(p); status == catalog.StockLow || status == catalog.StockOut {
			lowStock = append(lowStock, p.Name)
		}
	}
	return domain.BusinessSnapshot{
		TotalRevenueCents: finance.GrossRevenueCents(sales),
		TransactionCount:  len(sales),
		LowStockProducts:  lowStock,
	}, nil
}
