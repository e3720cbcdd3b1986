package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Method is the delivery method chosen at checkout.
type Method string

const (
	// MethodDesk is pickup at a delivery desk.
	MethodDesk Method = "desk"
	// MethodAddress is home delivery; requires a street address.
	MethodAddress Method = "address"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodDesk, MethodAddress:
		return Method(s), nil
	default:
		return "", &ValidationError{Field: "deliveryMethod", Reason: fmt.Sprintf("unknown delivery method %q", s)}
	}
}

// defaultRegionKey is the fallback entry the backend stores alongside
// region-specific prices.
const defaultRegionKey = "default"

// MethodPrices maps region name to delivery price for one method. The
// "default" key is the fallback for regions with no entry of their own.
type MethodPrices map[string]decimal.Decimal

// PriceTable is the sparse delivery price table served by the backend.
type PriceTable struct {
	Desk    MethodPrices `json:"desk"`
	Address MethodPrices `json:"address"`
}

// Validate rejects tables with no default entry for either method. Without
// it Resolve would not be total, and checkout would display an undefined
// price.
func (t PriceTable) Validate() error {
	for _, m := range []Method{MethodDesk, MethodAddress} {
		if _, ok := t.forMethod(m)[defaultRegionKey]; !ok {
			return fmt.Errorf("%w: no default price for method %q", ErrPriceTableInvalid, m)
		}
	}
	return nil
}

// Resolve returns the delivery price for a method and region: the
// region-specific entry when present, the method's default otherwise. Pure;
// total over all inputs once the table passed Validate.
func (t PriceTable) Resolve(m Method, region string) decimal.Decimal {
	prices := t.forMethod(m)
	if p, ok := prices[region]; ok {
		return p
	}
	return prices[defaultRegionKey]
}

func (t PriceTable) forMethod(m Method) MethodPrices {
	if m == MethodAddress {
		return t.Address
	}
	return t.Desk
}

// Quote is the derived checkout pricing for one (cart, method, region)
// combination. Recomputed on every request rather than cached.
type Quote struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryPrice decimal.Decimal `json:"deliveryPrice"`
	Total         decimal.Decimal `json:"total"`
}

func NewQuote(cart CartSnapshot, prices PriceTable, m Method, region string) Quote {
	subtotal := cart.Subtotal()
	delivery := prices.Resolve(m, region)
	return Quote{
		Subtotal:      subtotal,
		DeliveryPrice: delivery,
		Total:         subtotal.Add(delivery),
	}
}
