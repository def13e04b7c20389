package service

import (
	"context"
	"fmt"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/inventory"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
)

// AdjustStock applies a single adjustment command to one product.
func (s *Service) AdjustStock(ctx context.Context, req domain.AdjustStockRequest) (*domain.StockAdjustment, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	product, err := s.repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	adjustment, err := inventory.Adjust(*product, req.Type, req.Quantity, req.Reason, req.Notes, actorName(ctx), s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, err)
	}
	if err := s.repo.ApplyAdjustments(ctx, []domain.StockAdjustment{adjustment}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", product.ID).
		Str("type", string(req.Type)).
		Str("quantity", req.Quantity.String()).
		Str("user", actorName(ctx)).
		Msg("stock adjusted")
	return &adjustment, nil
}

// BulkAdjustStock applies one shared command across a selection. The batch is
// staged in full before a single repository write, so either every product
// moves or none does.
func (s *Service) BulkAdjustStock(ctx context.Context, req domain.BulkAdjustStockRequest) ([]domain.StockAdjustment, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		product, err := s.repo.GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		products = append(products, *product)
	}

	adjustments, err := inventory.BulkAdjust(products, req.Type, req.Quantity, req.Reason, req.Notes, actorName(ctx), s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, err)
	}
	if err := s.repo.ApplyAdjustments(ctx, adjustments); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("products", len(adjustments)).
		Str("type", string(req.Type)).
		Str("user", actorName(ctx)).
		Msg("bulk stock adjustment applied")
	return adjustments, nil
}

// ConvertStock moves stock between two products as one grouped operation.
func (s *Service) ConvertStock(ctx context.Context, req domain.ConvertStockRequest) ([]domain.StockAdjustment, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	source, err := s.repo.GetProduct(ctx, req.SourceProductID)
	if err != nil {
		return nil, fmt.Errorf("source product: %w", err)
	}
	target, err := s.repo.GetProduct(ctx, req.TargetProductID)
	if err != nil {
		return nil, fmt.Errorf("target product: %w", err)
	}

	legs, err := inventory.Convert(*source, *target, req.SourceQuantity, req.TargetQuantity, req.Notes, actorName(ctx), s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, err)
	}
	if err := s.repo.ApplyAdjustments(ctx, legs); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("source", source.ID).
		Str("target", target.ID).
		Str("user", actorName(ctx)).
		Msg("stock converted")
	return legs, nil
}

func (s *Service) ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error) {
	return s.repo.ListAdjustments(ctx, productID, limit)
}
