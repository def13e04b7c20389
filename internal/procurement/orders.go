package procurement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

// Purchase orders follow a forward-only state machine:
//
//	PENDING -> ORDERED -> RECEIVED
//	PENDING|ORDERED -> CANCELLED
//
// RECEIVED and CANCELLED are terminal; a CANCELLED order may be deleted.

var (
	ErrInvalidTransition = errors.New("invalid purchase order transition")
	ErrNotEditable       = errors.New("purchase order is no longer editable")
	ErrNotDeletable      = errors.New("only cancelled purchase orders can be deleted")
)

func CanTransition(from, to domain.PurchaseOrderStatus) bool {
	switch from {
	case domain.POStatusPending:
		return to == domain.POStatusOrdered || to == domain.POStatusCancelled
	case domain.POStatusOrdered:
		return to == domain.POStatusReceived || to == domain.POStatusCancelled
	default:
		return false
	}
}

// Transition returns a copy of the order in the new status, or rejects the
// move.
func Transition(po domain.PurchaseOrder, to domain.PurchaseOrderStatus) (domain.PurchaseOrder, error) {
	if !CanTransition(po.Status, to) {
		return domain.PurchaseOrder{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, po.Status, to)
	}
	po.Status = to
	return po, nil
}

func Editable(status domain.PurchaseOrderStatus) bool {
	return status == domain.POStatusPending || status == domain.POStatusOrdered
}

func Deletable(status domain.PurchaseOrderStatus) bool {
	return status == domain.POStatusCancelled
}

// TotalCostCents recomputes the order total from its lines.
func TotalCostCents(items []domain.PurchaseOrderItem) int64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromInt(item.UnitCostCents).Mul(item.Quantity))
	}
	return total.Round(0).IntPart()
}

// ApplyEdit replaces supplier and items on an editable order and recomputes
// the total. Terminal orders reject edits.
func ApplyEdit(po domain.PurchaseOrder, supplier string, items []domain.PurchaseOrderItem) (domain.PurchaseOrder, error) {
	if !Editable(po.Status) {
		return domain.PurchaseOrder{}, fmt.Errorf("%w: status %s", ErrNotEditable, po.Status)
	}
	po.Supplier = supplier
	po.Items = items
	po.TotalCostCents = TotalCostCents(items)
	return po, nil
}
