package store

import (
	"context"
	"errors"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
)

// Repository owns the application state. Read methods hand out snapshots;
// write methods accept fully-built records. Sales, returns, adjustments and
// price history are append-only: nothing ever updates or deletes them.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	AppendSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)

	ListReturns(ctx context.Context) ([]domain.ReturnTransaction, error)
	AppendReturn(ctx context.Context, ret domain.ReturnTransaction) (*domain.ReturnTransaction, error)

	// ApplyAdjustments appends a group of adjustment records and projects
	// each affected Product.Stock to the record's NewStock in one guarded
	// operation, so a bulk batch or the two legs of a conversion are never
	// observable half-applied.
	ApplyAdjustments(ctx context.Context, adjustments []domain.StockAdjustment) error
	ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error)

	AppendPriceHistory(ctx context.Context, entry domain.PriceHistory) error
	ListPriceHistory(ctx context.Context, productID string, limit int) ([]domain.PriceHistory, error)

	CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, id string) error
	ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error)

	GetSettings(ctx context.Context) (domain.StoreSettings, error)
	UpdateSettings(ctx context.Context, settings domain.StoreSettings) (domain.StoreSettings, error)

	GetUser(ctx context.Context, username string) (*domain.UserAccount, error)
	CreateUser(ctx context.Context, user domain.UserAccount) error
}
