package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/xid"
)

// The mutation engine validates stock commands and produces append-only
// StockAdjustment records. It never writes anywhere itself; the service layer
// applies the records it returns.

var (
	ErrNegativeStock     = errors.New("resulting stock would be negative")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrSameProduct       = errors.New("source and target must differ")
	ErrInsufficientStock = errors.New("insufficient source stock")
)

// round3 absorbs representation noise from upstream float inputs. Three
// decimal places is the finest stock granularity the system supports.
func round3(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}

// Adjust produces a single adjustment record. The resulting stock must not be
// negative; a violating command is rejected and no record is produced.
//
// This path deliberately does not coerce fractional quantities for products
// with AllowDecimal=false; only the bulk path applies integer rounding. The
// asymmetry is inherited behavior kept on purpose.
func Adjust(product domain.Product, typ domain.AdjustmentType, qty decimal.Decimal, reason, notes, user string, now time.Time) (domain.StockAdjustment, error) {
	if qty.IsNegative() {
		return domain.StockAdjustment{}, ErrInvalidQuantity
	}

	newStock, err := apply(product.Stock, typ, qty)
	if err != nil {
		return domain.StockAdjustment{}, err
	}
	if newStock.IsNegative() {
		return domain.StockAdjustment{}, fmt.Errorf("%w: %s %s would leave %s", ErrNegativeStock, typ, qty, newStock)
	}

	return domain.StockAdjustment{
		ID:            xid.New("adj"),
		BatchID:       uuid.NewString(),
		ProductID:     product.ID,
		UserName:      user,
		CreatedAt:     now,
		Type:          typ,
		Quantity:      qty,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		Reason:        reason,
		Notes:         notes,
	}, nil
}

// BulkAdjust applies one shared command to every product in the selection.
// The whole batch is rejected when the shared quantity is not positive for
// ADD/REMOVE, or negative for SET. Unlike the single path, per-product
// negative results are clamped to zero instead of rejected: a bulk operation
// must not partially fail. For products that do not allow decimal stock the
// shared quantity is rounded to the nearest integer before applying.
//
// All records share one timestamp and batch id marking them as one logical
// batch.
func BulkAdjust(products []domain.Product, typ domain.AdjustmentType, qty decimal.Decimal, reason, notes, user string, now time.Time) ([]domain.StockAdjustment, error) {
	switch typ {
	case domain.AdjustmentAdd, domain.AdjustmentRemove:
		if !qty.IsPositive() {
			return nil, fmt.Errorf("%w: bulk %s requires a positive quantity", ErrInvalidQuantity, typ)
		}
	case domain.AdjustmentSet:
		if qty.IsNegative() {
			return nil, fmt.Errorf("%w: bulk SET requires a non-negative quantity", ErrInvalidQuantity)
		}
	default:
		return nil, fmt.Errorf("%w: unknown adjustment type %q", ErrInvalidQuantity, typ)
	}

	batchID := uuid.NewString()
	batchNotes := strings.TrimSpace("[bulk] " + notes)

	adjustments := make([]domain.StockAdjustment, 0, len(products))
	for _, product := range products {
		applied := qty
		if !product.AllowDecimal {
			applied = qty.Round(0)
		}

		newStock, err := apply(product.Stock, typ, applied)
		if err != nil {
			return nil, err
		}
		if newStock.IsNegative() {
			newStock = decimal.Zero
		}

		adjustments = append(adjustments, domain.StockAdjustment{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     product.ID,
			UserName:      user,
			CreatedAt:     now,
			Type:          typ,
			Quantity:      applied,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			Reason:        reason,
			Notes:         batchNotes,
		})
	}
	return adjustments, nil
}

// Convert repacks stock from one product into another: a REMOVE leg on the
// source and an ADD leg on the target, cross-referencing each other. Both
// legs share one timestamp and batch id, so a consumer of the adjustment
// stream sees the conversion as a single group. The command is rejected as a
// whole, producing nothing, when the products are the same, either quantity
// is not positive, or the source lacks stock.
func Convert(source, target domain.Product, sourceQty, targetQty decimal.Decimal, notes, user string, now time.Time) ([]domain.StockAdjustment, error) {
	if source.ID == target.ID {
		return nil, ErrSameProduct
	}
	if !sourceQty.IsPositive() || !targetQty.IsPositive() {
		return nil, fmt.Errorf("%w: conversion quantities must be positive", ErrInvalidQuantity)
	}
	if sourceQty.GreaterThan(source.Stock) {
		return nil, fmt.Errorf("%w: need %s, have %s", ErrInsufficientStock, sourceQty, source.Stock)
	}

	batchID := uuid.NewString()
	removeNotes := fmt.Sprintf("converted to %s (%s)", target.Name, targetQty)
	addNotes := fmt.Sprintf("converted from %s (%s)", source.Name, sourceQty)
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		removeNotes += "; " + trimmed
		addNotes += "; " + trimmed
	}

	return []domain.StockAdjustment{
		{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     source.ID,
			UserName:      user,
			CreatedAt:     now,
			Type:          domain.AdjustmentRemove,
			Quantity:      sourceQty,
			PreviousStock: source.Stock,
			NewStock:      round3(source.Stock.Sub(sourceQty)),
			Reason:        "conversion",
			Notes:         removeNotes,
		},
		{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     target.ID,
			UserName:      user,
			CreatedAt:     now,
			Type:          domain.AdjustmentAdd,
			Quantity:      targetQty,
			PreviousStock: target.Stock,
			NewStock:      round3(target.Stock.Add(targetQty)),
			Reason:        "conversion",
			Notes:         addNotes,
		},
	}, nil
}

func apply(stock decimal.Decimal, typ domain.AdjustmentType, qty decimal.Decimal) (decimal.Decimal, error) {
	switch typ {
	case domain.AdjustmentAdd:
		return round3(stock.Add(qty)), nil
	case domain.AdjustmentRemove:
		return round3(stock.Sub(qty)), nil
	case domain.AdjustmentSet:
		return qty, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown adjustment type %q", ErrInvalidQuantity, typ)
	}
}
