package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock quantities use fixed-point decimals throughout so that fractional
// units (kg, liters) never accumulate binary floating-point drift. Money is
// carried as int64 cents.

type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	PriceCents      int64           `json:"price_cents"`
	CostCents       int64           `json:"cost_cents"`
	Stock           decimal.Decimal `json:"stock"`
	MinStockLevel   decimal.Decimal `json:"min_stock_level"`
	StockExpiryDate string          `json:"stock_expiry_date,omitempty"`
	AllowDecimal    bool            `json:"allow_decimal"`
}

// Margin returns the fractional margin (price - cost) / price, or 0 when the
// product has no positive price.
func (p Product) Margin() float64 {
	if p.PriceCents <= 0 {
		return 0
	}
	return float64(p.PriceCents-p.CostCents) / float64(p.PriceCents)
}

type ProductSaveRequest struct {
	Name            string          `json:"name" validate:"required"`
	SKU             string          `json:"sku" validate:"required"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	PriceCents      int64           `json:"price_cents" validate:"min=0"`
	CostCents       int64           `json:"cost_cents" validate:"min=0"`
	Stock           decimal.Decimal `json:"stock"`
	MinStockLevel   decimal.Decimal `json:"min_stock_level"`
	StockExpiryDate string          `json:"stock_expiry_date,omitempty"`
	AllowDecimal    bool            `json:"allow_decimal"`
}

type SaleItem struct {
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	PriceCentsAtSale int64           `json:"price_cents_at_sale"`
	CostCentsAtSale  int64           `json:"cost_cents_at_sale"`
}

// Sale is an immutable historical record; nothing mutates it after creation.
type Sale struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []SaleItem `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	ProfitCents   int64      `json:"profit_cents"`
}

type ReturnItem struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	RefundCents int64           `json:"refund_cents"`
	Restock     bool            `json:"restock"`
}

// ReturnTransaction references its originating sale by id only; the sale is
// resolved at computation time and a missing reference contributes zero
// profit reversal rather than failing the aggregate.
type ReturnTransaction struct {
	ID             string       `json:"id"`
	OriginalSaleID string       `json:"original_sale_id"`
	CreatedAt      time.Time    `json:"created_at"`
	Items          []ReturnItem `json:"items"`
	RefundCents    int64        `json:"refund_cents"`
}

type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "ADD"
	AdjustmentRemove AdjustmentType = "REMOVE"
	AdjustmentSet    AdjustmentType = "SET"
)

// StockAdjustment is an append-only ledger entry. Adjustments created by one
// bulk operation or by the two legs of a conversion share a BatchID and
// timestamp so consumers never observe a half-applied group.
type StockAdjustment struct {
	ID            string          `json:"id"`
	BatchID       string          `json:"batch_id"`
	ProductID     string          `json:"product_id"`
	UserName      string          `json:"user_name"`
	CreatedAt     time.Time       `json:"created_at"`
	Type          AdjustmentType  `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	Notes         string          `json:"notes,omitempty"`
}

type PriceChangeKind string

const (
	PriceChangePrice PriceChangeKind = "PRICE"
	PriceChangeCost  PriceChangeKind = "COST"
)

type PriceHistory struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Kind      PriceChangeKind `json:"kind"`
	OldCents  int64           `json:"old_cents"`
	NewCents  int64           `json:"new_cents"`
	ChangedBy string          `json:"changed_by"`
	CreatedAt time.Time       `json:"created_at"`
}

type PurchaseOrderStatus string

const (
	POStatusPending   PurchaseOrderStatus = "PENDING"
	POStatusOrdered   PurchaseOrderStatus = "ORDERED"
	POStatusReceived  PurchaseOrderStatus = "RECEIVED"
	POStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

type PurchaseOrderItem struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCostCents int64           `json:"unit_cost_cents"`
}

type PurchaseOrder struct {
	ID             string              `json:"id"`
	Supplier       string              `json:"supplier"`
	Status         PurchaseOrderStatus `json:"status"`
	OrderDate      time.Time           `json:"order_date"`
	Items          []PurchaseOrderItem `json:"items"`
	TotalCostCents int64               `json:"total_cost_cents"`
}

type PurchaseOrderSaveRequest struct {
	Supplier string              `json:"supplier" validate:"required"`
	Items    []PurchaseOrderItem `json:"items" validate:"required,min=1"`
}

type StoreSettings struct {
	Name                 string  `json:"name"`
	CurrencyCode         string  `json:"currency_code"`
	TaxRatePercent       float64 `json:"tax_rate_percent"`
	LowStockAlertEnabled bool    `json:"low_stock_alert_enabled"`
}

// CurrencySymbol maps a currency code to its display symbol. Unknown codes
// fall back to the dollar sign.
func CurrencySymbol(code string) string {
	switch code {
	case "PHP":
		return "₱"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return "$"
	}
}

type AdjustStockRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Type      AdjustmentType  `json:"type" validate:"required,oneof=ADD REMOVE SET"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason" validate:"required"`
	Notes     string          `json:"notes"`
}

type BulkAdjustStockRequest struct {
	ProductIDs []string        `json:"product_ids" validate:"required,min=1"`
	Type       AdjustmentType  `json:"type" validate:"required,oneof=ADD REMOVE SET"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason" validate:"required"`
	Notes      string          `json:"notes"`
}

type ConvertStockRequest struct {
	SourceProductID string          `json:"source_product_id" validate:"required"`
	TargetProductID string          `json:"target_product_id" validate:"required"`
	SourceQuantity  decimal.Decimal `json:"source_quantity"`
	TargetQuantity  decimal.Decimal `json:"target_quantity"`
	Notes           string          `json:"notes"`
}

type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type RecordSaleRequest struct {
	Items []SaleLineRequest `json:"items" validate:"required,min=1"`
}

type ReturnLineRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	RefundCents int64           `json:"refund_cents"`
	Restock     bool            `json:"restock"`
}

type RecordReturnRequest struct {
	OriginalSaleID string              `json:"original_sale_id" validate:"required"`
	Items          []ReturnLineRequest `json:"items" validate:"required,min=1"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type ProductSuggestion struct {
	ProductName     string `json:"product_name"`
	SuggestedAction string `json:"suggested_action"`
}

// BusinessSnapshot is the read-only summary handed to the advisory provider.
type BusinessSnapshot struct {
	TotalRevenueCents int64    `json:"total_revenue_cents"`
	TransactionCount  int      `json:"transaction_count"`
	LowStockProducts  []string `json:"low_stock_products"`
}
