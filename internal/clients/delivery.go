package clients

import (
	"context"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
)

type DeliveryClient struct{ c *Client }

func NewDeliveryClient(c *Client) *DeliveryClient { return &DeliveryClient{c: c} }

// FetchPriceTable reads the delivery price table. No auth required.
func (dc *DeliveryClient) FetchPriceTable(ctx context.Context) (checkout.PriceTable, error) {
	var body struct {
		Prices checkout.PriceTable `json:"prices"`
	}
	if err := dc.c.DoJSON(ctx, http.MethodGet, "/api/delivery-prices", "", nil, &body); err != nil {
		return checkout.PriceTable{}, err
	}
	return body.Prices, nil
}

func (dc *DeliveryClient) GetPrices(ctx context.Context, rawQuery string, headers http.Header) (*http.Response, error) {
	return dc.c.Do(ctx, http.MethodGet, "/api/delivery-prices", rawQuery, nil, headers)
}
