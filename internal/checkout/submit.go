package checkout

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one cart line flattened into the order-creation payload.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderRequest is the order-creation payload. Subtotal and Total are the
// client-derived proposal; the backend re-derives and may reject a mismatch.
// IdempotencyKey is fresh per submission attempt so a backend that supports
// it can deduplicate retries after a false-negative network error.
type OrderRequest struct {
	Items          []OrderItem     `json:"items"`
	DeliveryMethod Method          `json:"deliveryMethod"`
	Region         string          `json:"region"`
	Address        string          `json:"address,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryPrice  decimal.Decimal `json:"deliveryPrice"`
	Total          decimal.Decimal `json:"total"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

// Result carries the backend-assigned order id. Handed straight to the
// confirmation response, never retained.
type Result struct {
	OrderID string `json:"orderId"`
}

// OrderCreator issues the order-creation call against the backend.
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, req OrderRequest) (Result, error)
}

// Submission is the delivery form as filled in by the user.
type Submission struct {
	Method  Method
	Region  string
	Address string
}

func (s Submission) validate(cart CartSnapshot) error {
	if len(cart.Items) == 0 {
		return &ValidationError{Field: "cart", Reason: "cart is empty"}
	}
	if strings.TrimSpace(s.Region) == "" {
		return &ValidationError{Field: "region", Reason: "region is required"}
	}
	if s.Method == MethodAddress && strings.TrimSpace(s.Address) == "" {
		return &ValidationError{Field: "address", Reason: "address is required for home delivery"}
	}
	return nil
}

type Submitter struct {
	Orders OrderCreator
}

// Submit validates the delivery form, computes the proposed totals, and
// issues a single order-creation call. Validation failures return before any
// network activity. No automatic retry on failure; the form stays editable
// and a user-driven retry carries a new idempotency key.
func (s *Submitter) Submit(ctx context.Context, token string, cart CartSnapshot, prices PriceTable, sub Submission) (Result, error) {
	if strings.TrimSpace(token) == "" {
		return Result{}, ErrUnauthenticated
	}
	if err := sub.validate(cart); err != nil {
		return Result{}, err
	}

	quote := NewQuote(cart, prices, sub.Method, sub.Region)

	items := make([]OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, OrderItem{
			ProductID: it.Product.ID,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.UnitPrice,
		})
	}

	req := OrderRequest{
		Items:          items,
		DeliveryMethod: sub.Method,
		Region:         sub.Region,
		Subtotal:       quote.Subtotal,
		DeliveryPrice:  quote.DeliveryPrice,
		Total:          quote.Total,
		IdempotencyKey: uuid.NewString(),
	}
	if sub.Method == MethodAddress {
		req.Address = sub.Address
	}

	return s.Orders.CreateOrder(ctx, token, req)
}
