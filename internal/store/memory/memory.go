package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/xid"
)

// Store is a mutex-guarded in-memory repository. Every read hands out copies,
// so callers can never mutate shared state through a returned value.
type Store struct {
	mu             sync.RWMutex
	products       map[string]domain.Product
	sales          []domain.Sale
	returns        []domain.ReturnTransaction
	adjustments    []domain.StockAdjustment
	priceHistory   []domain.PriceHistory
	purchaseOrders map[string]domain.PurchaseOrder
	settings       domain.StoreSettings
	users          map[string]domain.UserAccount
}

func New() *Store {
	s := &Store{
		products:       make(map[string]domain.Product),
		purchaseOrders: make(map[string]domain.PurchaseOrder),
		users:          make(map[string]domain.UserAccount),
		settings: domain.StoreSettings{
			Name:                 "Main Street Store",
			CurrencyCode:         "USD",
			TaxRatePercent:       0,
			LowStockAlertEnabled: true,
		},
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	now := time.Now()

	seedProducts := []domain.Product{
		{
			Name: "Jasmine Rice", SKU: "GRO-0001", Category: "Groceries", Unit: "kg",
			PriceCents: 250, CostCents: 180,
			Stock:         decimal.RequireFromString("45.5"),
			MinStockLevel: decimal.NewFromInt(10),
			AllowDecimal:  true,
		},
		{
			Name: "Whole Milk 1L", SKU: "DAI-0001", Category: "Dairy", Unit: "pc",
			PriceCents: 325, CostCents: 240,
			Stock:           decimal.NewFromInt(24),
			MinStockLevel:   decimal.NewFromInt(6),
			StockExpiryDate: now.AddDate(0, 0, 10).Format("2006-01-02"),
		},
		{
			Name: "Cheddar Cheese Block", SKU: "DAI-0002", Category: "Dairy", Unit: "pc",
			PriceCents: 899, CostCents: 610,
			Stock:           decimal.NewFromInt(8),
			MinStockLevel:   decimal.NewFromInt(4),
			StockExpiryDate: now.AddDate(0, 2, 0).Format("2006-01-02"),
		},
		{
			Name: "Dish Soap 500ml", SKU: "HOM-0001", Category: "Household", Unit: "pc",
			PriceCents: 450, CostCents: 280,
			Stock:         decimal.NewFromInt(30),
			MinStockLevel: decimal.NewFromInt(5),
		},
		{
			Name: "Ground Coffee", SKU: "BEV-0001", Category: "Beverages", Unit: "kg",
			PriceCents: 1600, CostCents: 1100,
			Stock:         decimal.RequireFromString("3.25"),
			MinStockLevel: decimal.NewFromInt(2),
			AllowDecimal:  true,
		},
	}
	for _, p := range seedProducts {
		p.ID = xid.New("prd")
		s.products[p.ID] = p
	}

	for _, u := range []struct {
		username, password, role string
	}{
		{"admin", "admin123", "admin"},
		{"cashier", "cashier123", "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		s.users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" {
		product.ID = xid.New("prd")
	}
	for _, existing := range s.products {
		if strings.EqualFold(existing.SKU, product.SKU) {
			return nil, store.ErrValidation
		}
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return nil, store.ErrNotFound
	}
	for id, existing := range s.products {
		if id != product.ID && strings.EqualFold(existing.SKU, product.SKU) {
			return nil, store.ErrValidation
		}
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ListSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSales(s.sales), nil
}

func (s *Store) GetSale(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sale := range s.sales {
		if sale.ID == id {
			c := sale
			c.Items = append([]domain.SaleItem(nil), sale.Items...)
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) AppendSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sale.ID == "" {
		sale.ID = xid.New("sal")
	}
	sale.Items = append([]domain.SaleItem(nil), sale.Items...)
	s.sales = append(s.sales, sale)
	return &sale, nil
}

func (s *Store) ListReturns(_ context.Context) ([]domain.ReturnTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneReturns(s.returns), nil
}

func (s *Store) AppendReturn(_ context.Context, ret domain.ReturnTransaction) (*domain.ReturnTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ret.ID == "" {
		ret.ID = xid.New("ret")
	}
	ret.Items = append([]domain.ReturnItem(nil), ret.Items...)
	s.returns = append(s.returns, ret)
	return &ret, nil
}

// ApplyAdjustments validates the whole group before touching anything, then
// appends every record and projects each product's stock under the same lock.
// Either the whole group lands or none of it does.
func (s *Store) ApplyAdjustments(_ context.Context, adjustments []domain.StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, adj := range adjustments {
		if _, ok := s.products[adj.ProductID]; !ok {
			return store.ErrNotFound
		}
		if adj.NewStock.IsNegative() {
			return store.ErrValidation
		}
	}
	for _, adj := range adjustments {
		s.adjustments = append(s.adjustments, adj)
		p := s.products[adj.ProductID]
		p.Stock = adj.NewStock
		s.products[adj.ProductID] = p
	}
	return nil
}

// ListAdjustments returns records newest first, optionally restricted to one
// product. A limit of 0 means no limit.
func (s *Store) ListAdjustments(_ context.Context, productID string, limit int) ([]domain.StockAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StockAdjustment, 0, len(s.adjustments))
	for i := len(s.adjustments) - 1; i >= 0; i-- {
		adj := s.adjustments[i]
		if productID != "" && adj.ProductID != productID {
			continue
		}
		out = append(out, adj)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) AppendPriceHistory(_ context.Context, entry domain.PriceHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("prc")
	}
	s.priceHistory = append(s.priceHistory, entry)
	return nil
}

func (s *Store) ListPriceHistory(_ context.Context, productID string, limit int) ([]domain.PriceHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PriceHistory, 0, len(s.priceHistory))
	for i := len(s.priceHistory) - 1; i >= 0; i-- {
		entry := s.priceHistory[i]
		if productID != "" && entry.ProductID != productID {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) CreatePurchaseOrder(_ context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if po.ID == "" {
		po.ID = xid.New("pur")
	}
	po.Items = append([]domain.PurchaseOrderItem(nil), po.Items...)
	s.purchaseOrders[po.ID] = po
	return &po, nil
}

func (s *Store) GetPurchaseOrder(_ context.Context, id string) (*domain.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	po, ok := s.purchaseOrders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	po.Items = append([]domain.PurchaseOrderItem(nil), po.Items...)
	return &po, nil
}

func (s *Store) UpdatePurchaseOrder(_ context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.purchaseOrders[po.ID]; !ok {
		return nil, store.ErrNotFound
	}
	po.Items = append([]domain.PurchaseOrderItem(nil), po.Items...)
	s.purchaseOrders[po.ID] = po
	return &po, nil
}

func (s *Store) DeletePurchaseOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.purchaseOrders[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.purchaseOrders, id)
	return nil
}

func (s *Store) ListPurchaseOrders(_ context.Context) ([]domain.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PurchaseOrder, 0, len(s.purchaseOrders))
	for _, po := range s.purchaseOrders {
		po.Items = append([]domain.PurchaseOrderItem(nil), po.Items...)
		out = append(out, po)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

func (s *Store) GetSettings(_ context.Context) (domain.StoreSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) UpdateSettings(_ context.Context, settings domain.StoreSettings) (domain.StoreSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.settings, nil
}

func (s *Store) GetUser(_ context.Context, username string) (*domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return store.ErrValidation
	}
	s.users[user.Username] = user
	return nil
}

func cloneSales(sales []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, len(sales))
	for i, sale := range sales {
		out[i] = sale
		out[i].Items = append([]domain.SaleItem(nil), sale.Items...)
	}
	return out
}

func cloneReturns(returns []domain.ReturnTransaction) []domain.ReturnTransaction {
	out := make([]domain.ReturnTransaction, len(returns))
	for i, ret := range returns {
		out[i] = ret
		out[i].Items = append([]domain.ReturnItem(nil), ret.Items...)
	}
	return out
}
