package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

func TestUnconfiguredClientFailsFast(t *testing.T) {
	c := NewClient("", "", "", time.Second)

	_, err := c.ProductDescription(context.Background(), domain.Product{Name: "Widget"})
	if !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("err = %v, want ErrUnconfigured", err)
	}
}

func TestClientParsesChatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  A fine widget.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", time.Second)
	got, err := c.ProductDescription(context.Background(), domain.Product{Name: "Widget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A fine widget." {
		t.Fatalf("description = %q", got)
	}
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", time.Second)
	if _, err := c.BusinessInsights(context.Background(), domain.BusinessSnapshot{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestParseSuggestionsToleratesFences(t *testing.T) {
	raw := "```json\n[{\"product_name\": \"Milk\", \"suggested_action\": \"Restock\"}]\n```"

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].ProductName != "Milk" {
		t.Fatalf("suggestions = %+v", suggestions)
	}
}

func TestParseSuggestionsRejectsProse(t *testing.T) {
	if _, err := parseSuggestions("I cannot help with that."); err == nil {
		t.Fatal("expected error when no array is present")
	}
}

func TestFallbackSuggestionsCoverLowStock(t *testing.T) {
	snapshot := domain.BusinessSnapshot{LowStockProducts: []string{"Milk", "Rice"}}

	suggestions := FallbackSuggestions(snapshot)
	if len(suggestions) != 2 {
		t.Fatalf("count = %d, want 2", len(suggestions))
	}
	if suggestions[0].ProductName != "Milk" || suggestions[0].SuggestedAction == "" {
		t.Fatalf("suggestion = %+v", suggestions[0])
	}
}
