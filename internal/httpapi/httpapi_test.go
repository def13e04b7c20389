package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/cache"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/service"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store/memory"
)

type stubAdvisor struct{}

func (stubAdvisor) ProductDescription(context.Context, domain.Product) (string, error) {
	return "", errors.New("unconfigured")
}

func (stubAdvisor) BusinessInsights(context.Context, domain.BusinessSnapshot) (string, error) {
	return "", errors.New("unconfigured")
}

func (stubAdvisor) ProductSuggestions(context.Context, domain.BusinessSnapshot) ([]domain.ProductSuggestion, error) {
	return nil, errors.New("unconfigured")
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	repo := memory.New()
	svc := service.New(repo, cache.Noop{}, stubAdvisor{}, zerolog.Nop(), time.Hour)
	auth := NewAuthManager("test-secret", time.Hour, repo)
	return NewServer(svc, auth, zerolog.Nop()).Router("*")
}

func login(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(domain.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}
	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func doJSON(handler http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := newTestHandler(t)

	body, _ := json.Marshal(domain.LoginRequest{Username: "admin", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(handler, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", rec.Code)
	}

	rec = doJSON(handler, http.MethodGet, "/api/products", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", rec.Code)
	}

	token := login(t, handler, "admin", "admin123")
	rec = doJSON(handler, http.MethodGet, "/api/products", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", rec.Code)
	}
}

func TestSettingsRequireAdminRole(t *testing.T) {
	handler := newTestHandler(t)

	cashier := login(t, handler, "cashier", "cashier123")
	if rec := doJSON(handler, http.MethodGet, "/api/settings", cashier, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("cashier status = %d, want 403", rec.Code)
	}

	admin := login(t, handler, "admin", "admin123")
	if rec := doJSON(handler, http.MethodGet, "/api/settings", admin, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec := doJSON(handler, http.MethodPost, "/api/products", token, domain.ProductSaveRequest{
		Name:       "Widget",
		SKU:        "TST-0001",
		PriceCents: 500,
		CostCents:  300,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created product: %v", err)
	}

	rec = doJSON(handler, http.MethodGet, "/api/products/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(handler, http.MethodPost, "/api/stock/adjust", token, domain.AdjustStockRequest{
		ProductID: created.ID,
		Type:      domain.AdjustmentAdd,
		Quantity:  decimal.NewFromInt(7),
		Reason:    "initial stock",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("adjust status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(handler, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(handler, http.MethodGet, "/api/products/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUnknownProductIs404(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec := doJSON(handler, http.MethodGet, "/api/products/prd-missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
