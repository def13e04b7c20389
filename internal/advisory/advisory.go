// Package advisory generates product descriptions, business insights and
// restocking suggestions through an external chat-completion service. The
// application treats the whole feature as optional: any provider failure is
// answered with a canned fallback, never surfaced as an error.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
)

type Provider interface {
	ProductDescription(ctx context.Context, product domain.Product) (string, error)
	BusinessInsights(ctx context.Context, snapshot domain.BusinessSnapshot) (string, error)
	ProductSuggestions(ctx context.Context, snapshot domain.BusinessSnapshot) ([]domain.ProductSuggestion, error)
}

const (
	FallbackDescription = "No description available yet. Add one manually from the product form."
	FallbackInsights    = "Insights are unavailable right now. Review your dashboard totals and low stock list directly."
)

// FallbackSuggestions derives a minimal restock list from the snapshot alone,
// so the suggestions panel stays useful without a provider.
func FallbackSuggestions(snapshot domain.BusinessSnapshot) []domain.ProductSuggestion {
	out := make([]domain.ProductSuggestion, 0, len(snapshot.LowStockProducts))
	for _, name := range snapshot.LowStockProducts {
		out = append(out, domain.ProductSuggestion{
			ProductName:     name,
			SuggestedAction: "Restock soon: below minimum stock level",
		})
	}
	return out
}

func descriptionPrompt(product domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, friendly retail product description (2 sentences max) for %q", product.Name)
	if product.Category != "" {
		fmt.Fprintf(&b, " in the %s category", product.Category)
	}
	if product.Unit != "" {
		fmt.Fprintf(&b, ", sold per %s", product.Unit)
	}
	b.WriteString(". Plain text only.")
	return b.String()
}

func insightsPrompt(snapshot domain.BusinessSnapshot) string {
	data, _ := json.Marshal(snapshot)
	return "You are a retail analyst. Given this store snapshot as JSON, " +
		"write 3 short actionable insights as a plain-text list:\n" + string(data)
}

func suggestionsPrompt(snapshot domain.BusinessSnapshot) string {
	data, _ := json.Marshal(snapshot)
	return "You are a retail analyst. Given this store snapshot as JSON, reply with ONLY a JSON array " +
		`of objects shaped like {"product_name": "...", "suggested_action": "..."} naming products to restock or promote:` +
		"\n" + string(data)
}
