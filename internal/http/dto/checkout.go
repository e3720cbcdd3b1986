package dto

import (
	"github.com/shopspring/decimal"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
)

// CheckoutView is the joined snapshot the checkout page renders from.
type CheckoutView struct {
	Cart     checkout.CartSnapshot `json:"cart"`
	Region   string                `json:"region"`
	Prices   checkout.PriceTable   `json:"prices"`
	Subtotal decimal.Decimal       `json:"subtotal"`
}

type SubmitOrderRequest struct {
	DeliveryMethod string `json:"deliveryMethod"`
	Region         string `json:"region"`
	Address        string `json:"address,omitempty"`
}

type OrderConfirmation struct {
	OrderID string `json:"orderId"`
}
