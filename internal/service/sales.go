package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/xid"
)

// RecordSale checks stock for every line, snapshots the current price and cost
// into the sale items, deducts stock as one adjustment batch and appends the
// sale. Totals and profit are fixed at recording time; later price edits never
// rewrite history.
func (s *Service) RecordSale(ctx context.Context, req domain.RecordSaleRequest) (*domain.Sale, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	saleID := xid.New("sal")
	batchID := uuid.NewString()

	subtotal := decimal.Zero
	profit := decimal.Zero
	items := make([]domain.SaleItem, 0, len(req.Items))
	adjustments := make([]domain.StockAdjustment, 0, len(req.Items))

	// Working stock per product, so a product repeated across lines is
	// checked against what earlier lines already claimed.
	working := make(map[string]decimal.Decimal)

	for _, line := range req.Items {
		product, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, err)
		}
		if _, ok := working[product.ID]; !ok {
			working[product.ID] = product.Stock
		}
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity for %s must be positive", store.ErrValidation, product.Name)
		}
		if !product.AllowDecimal && !line.Quantity.Equal(line.Quantity.Round(0)) {
			return nil, fmt.Errorf("%w: %s is sold in whole units", store.ErrValidation, product.Name)
		}
		if line.Quantity.GreaterThan(working[product.ID]) {
			return nil, fmt.Errorf("%w: %s has %s in stock", store.ErrInsufficientStock, product.Name, working[product.ID])
		}

		subtotal = subtotal.Add(decimal.NewFromInt(product.PriceCents).Mul(line.Quantity))
		profit = profit.Add(decimal.NewFromInt(product.PriceCents - product.CostCents).Mul(line.Quantity))

		previous := working[product.ID]
		next := previous.Sub(line.Quantity).Round(3)
		working[product.ID] = next

		items = append(items, domain.SaleItem{
			ProductID:        product.ID,
			Quantity:         line.Quantity,
			PriceCentsAtSale: product.PriceCents,
			CostCentsAtSale:  product.CostCents,
		})
		adjustments = append(adjustments, domain.StockAdjustment{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     product.ID,
			UserName:      actorName(ctx),
			CreatedAt:     now,
			Type:          domain.AdjustmentRemove,
			Quantity:      line.Quantity,
			PreviousStock: previous,
			NewStock:      next,
			Reason:        "sale",
			Notes:         "sale " + saleID,
		})
	}

	subtotalCents := subtotal.Round(0).IntPart()
	taxCents := subtotal.Mul(decimal.NewFromFloat(settings.TaxRatePercent)).Div(decimal.NewFromInt(100)).Round(0).IntPart()

	// Stock is deducted before the sale is appended. The in-memory store's
	// append cannot fail once the adjustments land; a durable repository
	// must cover both writes with one transaction or the ledger and sale
	// history drift apart.
	if err := s.repo.ApplyAdjustments(ctx, adjustments); err != nil {
		return nil, err
	}

	sale := domain.Sale{
		ID:            saleID,
		CreatedAt:     now,
		Items:         items,
		SubtotalCents: subtotalCents,
		TaxCents:      taxCents,
		TotalCents:    subtotalCents + taxCents,
		ProfitCents:   profit.Round(0).IntPart(),
	}
	recorded, err := s.repo.AppendSale(ctx, sale)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sale_id", recorded.ID).
		Int64("total_cents", recorded.TotalCents).
		Str("user", actorName(ctx)).
		Msg("sale recorded")
	return recorded, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx)
}

func (s *Service) ListReturns(ctx context.Context) ([]domain.ReturnTransaction, error) {
	return s.repo.ListReturns(ctx)
}

// RecordReturn validates every line against the original sale, including the
// quantity already returned by earlier returns for the same sale, refunds at
// the recorded sale price and restocks flagged lines as one adjustment batch.
func (s *Service) RecordReturn(ctx context.Context, req domain.RecordReturnRequest) (*domain.ReturnTransaction, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	sale, err := s.repo.GetSale(ctx, req.OriginalSaleID)
	if err != nil {
		return nil, fmt.Errorf("original sale: %w", err)
	}
	alreadyReturned, err := s.returnedQuantities(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	returnID := xid.New("ret")
	batchID := uuid.NewString()

	var refundTotal int64
	items := make([]domain.ReturnItem, 0, len(req.Items))
	adjustments := make([]domain.StockAdjustment, 0, len(req.Items))

	for _, line := range req.Items {
		soldLine, ok := findSaleItem(sale.Items, line.ProductID)
		if !ok {
			return nil, fmt.Errorf("%w: product %s is not on sale %s", store.ErrValidation, line.ProductID, sale.ID)
		}
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: return quantity must be positive", store.ErrValidation)
		}
		remaining := soldLine.Quantity.Sub(alreadyReturned[line.ProductID])
		if line.Quantity.GreaterThan(remaining) {
			return nil, fmt.Errorf("%w: only %s of %s left to return on sale %s",
				store.ErrValidation, remaining, line.ProductID, sale.ID)
		}

		refund := line.RefundCents
		if refund <= 0 {
			refund = decimal.NewFromInt(soldLine.PriceCentsAtSale).Mul(line.Quantity).Round(0).IntPart()
		}
		refundTotal += refund

		items = append(items, domain.ReturnItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			RefundCents: refund,
			Restock:     line.Restock,
		})

		if !line.Restock {
			continue
		}
		product, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// The product was deleted after the sale; record the
				// return without restocking it.
				s.log.Warn().Str("product_id", line.ProductID).Msg("restock skipped for deleted product")
				continue
			}
			return nil, err
		}
		adjustments = append(adjustments, domain.StockAdjustment{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     product.ID,
			UserName:      actorName(ctx),
			CreatedAt:     now,
			Type:          domain.AdjustmentAdd,
			Quantity:      line.Quantity,
			PreviousStock: product.Stock,
			NewStock:      product.Stock.Add(line.Quantity).Round(3),
			Reason:        "return",
			Notes:         "return " + returnID + " for sale " + sale.ID,
		})
	}

	// Same write ordering as RecordSale: restock first, then append the
	// return, with the same single-transaction requirement on a durable
	// repository.
	if err := s.repo.ApplyAdjustments(ctx, adjustments); err != nil {
		return nil, err
	}

	ret := domain.ReturnTransaction{
		ID:             returnID,
		OriginalSaleID: sale.ID,
		CreatedAt:      now,
		Items:          items,
		RefundCents:    refundTotal,
	}
	recorded, err := s.repo.AppendReturn(ctx, ret)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("return_id", recorded.ID).
		Str("sale_id", sale.ID).
		Int64("refund_cents", recorded.RefundCents).
		Str("user", actorName(ctx)).
		Msg("return recorded")
	return recorded, nil
}

// returnedQuantities sums prior returned quantities per product for one sale.
func (s *Service) returnedQuantities(ctx context.Context, saleID string) (map[string]decimal.Decimal, error) {
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal)
	for _, ret := range returns {
		if ret.OriginalSaleID != saleID {
			continue
		}
		for _, item := range ret.Items {
			totals[item.ProductID] = totals[item.ProductID].Add(item.Quantity)
		}
	}
	return totals, nil
}

func findSaleItem(items []domain.SaleItem, productID string) (domain.SaleItem, bool) {
	for _, item := range items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.SaleItem{}, false
}
