package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/procurement"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/xid"
)

func (s *Service) CreatePurchaseOrder(ctx context.Context, req domain.PurchaseOrderSaveRequest) (*domain.PurchaseOrder, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	po := domain.PurchaseOrder{
		ID:             xid.New("pur"),
		Supplier:       req.Supplier,
		Status:         domain.POStatusPending,
		OrderDate:      s.now(),
		Items:          req.Items,
		TotalCostCents: procurement.TotalCostCents(req.Items),
	}
	created, err := s.repo.CreatePurchaseOrder(ctx, po)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("po_id", created.ID).Str("supplier", created.Supplier).Msg("purchase order created")
	return created, nil
}

func (s *Service) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return s.repo.GetPurchaseOrder(ctx, id)
}

func (s *Service) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return s.repo.ListPurchaseOrders(ctx)
}

func (s *Service) UpdatePurchaseOrder(ctx context.Context, id string, req domain.PurchaseOrderSaveRequest) (*domain.PurchaseOrder, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	po, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	edited, err := procurement.ApplyEdit(*po, req.Supplier, req.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, err)
	}
	return s.repo.UpdatePurchaseOrder(ctx, edited)
}

// TransitionPurchaseOrder moves an order along its state machine. Receiving an
// order adds the ordered quantities to stock as one adjustment batch before
// the status lands.
func (s *Service) TransitionPurchaseOrder(ctx context.Context, id string, to domain.PurchaseOrderStatus) (*domain.PurchaseOrder, error) {
	po, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	moved, err := procurement.Transition(*po, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, err)
	}

	if to == domain.POStatusReceived {
		if err := s.receiveStock(ctx, moved); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdatePurchaseOrder(ctx, moved)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("po_id", id).Str("status", string(to)).Str("user", actorName(ctx)).Msg("purchase order transitioned")
	return updated, nil
}

func (s *Service) DeletePurchaseOrder(ctx context.Context, id string) error {
	po, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return err
	}
	if !procurement.Deletable(po.Status) {
		return fmt.Errorf("%w: %s", store.ErrValidation, procurement.ErrNotDeletable)
	}
	return s.repo.DeletePurchaseOrder(ctx, id)
}

func (s *Service) receiveStock(ctx context.Context, po domain.PurchaseOrder) error {
	now := s.now()
	batchID := uuid.NewString()

	adjustments := make([]domain.StockAdjustment, 0, len(po.Items))
	for _, item := range po.Items {
		product, err := s.repo.GetProduct(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		adjustments = append(adjustments, domain.StockAdjustment{
			ID:            xid.New("adj"),
			BatchID:       batchID,
			ProductID:     product.ID,
			UserName:      actorName(ctx),
			CreatedAt:     now,
			Type:          domain.AdjustmentAdd,
			Quantity:      item.Quantity,
			PreviousStock: product.Stock,
			NewStock:      product.Stock.Add(item.Quantity).Round(3),
			Reason:        "purchase order",
			Notes:         "received " + po.ID,
		})
	}
	return s.repo.ApplyAdjustments(ctx, adjustments)
}

func (s *Service) GetSettings(ctx context.Context) (domain.StoreSettings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, settings domain.StoreSettings) (domain.StoreSettings, error) {
	updated, err := s.repo.UpdateSettings(ctx, settings)
	if err != nil {
		return domain.StoreSettings{}, err
	}
	s.log.Info().Str("user", actorName(ctx)).Msg("store settings updated")
	return updated, nil
}
