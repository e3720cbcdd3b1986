// Package checkout implements the storefront checkout flow: loading the
// cart/region/price-table snapshot, resolving delivery prices, and submitting
// orders to the backend. The backend stays the authority on pricing and
// stock; everything here is computed from a short-lived read-only snapshot.
package checkout

import "github.com/shopspring/decimal"

func init() {
	// The backend speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the denormalized product reference embedded in a cart line item.
// It is a snapshot taken by the backend at fetch time and may be stale
// relative to live product data.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Pictures    []string        `json:"pictures,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Subcategory string          `json:"subcategory,omitempty"`
	Gender      string          `json:"gender,omitempty"`
	Age         string          `json:"age,omitempty"`
	Season      string          `json:"season,omitempty"`
}

type LineItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot is the user's cart exactly as supplied by the backend. Item
// order is display order only. Never mutated locally; refreshing means
// re-fetching.
type CartSnapshot struct {
	Items []LineItem `json:"items"`
}

// Subtotal sums unit price times quantity over all items.
func (c CartSnapshot) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}
