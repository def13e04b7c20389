package procurement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

func TestCanTransition(t *testing.T) {
	allowed := map[domain.PurchaseOrderStatus][]domain.PurchaseOrderStatus{
		domain.POStatusPending:   {domain.POStatusOrdered, domain.POStatusCancelled},
		domain.POStatusOrdered:   {domain.POStatusReceived, domain.POStatusCancelled},
		domain.POStatusReceived:  {},
		domain.POStatusCancelled: {},
	}
	all := []domain.PurchaseOrderStatus{
		domain.POStatusPending, domain.POStatusOrdered, domain.POStatusReceived, domain.POStatusCancelled,
	}

	for from, tos := range allowed {
		ok := map[domain.PurchaseOrderStatus]bool{}
		for _, to := range tos {
			ok[to] = true
		}
		for _, to := range all {
			if got := CanTransition(from, to); got != ok[to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestTransitionRejectsInvalidMove(t *testing.T) {
	po := domain.PurchaseOrder{ID: "pur-1", Status: domain.POStatusReceived}

	_, err := Transition(po, domain.POStatusCancelled)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTotalCostCents(t *testing.T) {
	items := []domain.PurchaseOrderItem{
		{ProductID: "prd-1", Quantity: decimal.RequireFromString("2.5"), UnitCostCents: 180},
		{ProductID: "prd-2", Quantity: decimal.NewFromInt(10), UnitCostCents: 240},
	}
	if got := TotalCostCents(items); got != 450+2400 {
		t.Fatalf("total = %d, want 2850", got)
	}
}

func TestApplyEdit(t *testing.T) {
	po := domain.PurchaseOrder{
		ID:       "pur-1",
		Supplier: "Acme Foods",
		Status:   domain.POStatusPending,
		Items: []domain.PurchaseOrderItem{
			{ProductID: "prd-1", Quantity: decimal.NewFromInt(1), UnitCostCents: 100},
		},
		TotalCostCents: 100,
	}

	edited, err := ApplyEdit(po, "Better Foods", []domain.PurchaseOrderItem{
		{ProductID: "prd-1", Quantity: decimal.NewFromInt(3), UnitCostCents: 90},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edited.Supplier != "Better Foods" || edited.TotalCostCents != 270 {
		t.Fatalf("edit result = %+v", edited)
	}

	po.Status = domain.POStatusCancelled
	if _, err := ApplyEdit(po, "x", nil); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("err = %v, want ErrNotEditable", err)
	}
}

func TestDeletableOnlyWhenCancelled(t *testing.T) {
	if Deletable(domain.POStatusPending) || Deletable(domain.POStatusReceived) {
		t.Fatal("only cancelled orders may be deleted")
	}
	if !Deletable(domain.POStatusCancelled) {
		t.Fatal("cancelled orders must be deletable")
	}
}
