package clients

import (
	"context"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// CreateOrder submits the order-creation payload and returns the
// backend-assigned order id.
func (oc *OrderClient) CreateOrder(ctx context.Context, token string, req checkout.OrderRequest) (checkout.Result, error) {
	var body struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	if err := oc.c.DoJSON(ctx, http.MethodPost, "/api/orders", token, req, &body); err != nil {
		return checkout.Result{}, err
	}
	return checkout.Result{OrderID: body.Order.ID}, nil
}

func (oc *OrderClient) GetOrder(ctx context.Context, orderId, rawQuery string, headers http.Header) (*http.Response, error) {
	return oc.c.Do(ctx, http.MethodGet, "/api/orders/"+orderId, rawQuery, nil, headers)
}

func (oc *OrderClient) ListOrders(ctx context.Context, rawQuery string, headers http.Header) (*http.Response, error) {
	return oc.c.Do(ctx, http.MethodGet, "/api/orders", rawQuery, nil, headers)
}
