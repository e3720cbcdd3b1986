package clients

import (
	"context"
	"io"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
)

type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

// FetchCart returns the authenticated user's cart decoded for the checkout
// flow.
func (cc *CartClient) FetchCart(ctx context.Context, token string) (checkout.CartSnapshot, error) {
	var body struct {
		Cart checkout.CartSnapshot `json:"cart"`
	}
	if err := cc.c.DoJSON(ctx, http.MethodGet, "/api/cart", token, nil, &body); err != nil {
		return checkout.CartSnapshot{}, err
	}
	return body.Cart, nil
}

func (cc *CartClient) GetCart(ctx context.Context, rawQuery string, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodGet, "/api/cart", rawQuery, nil, headers)
}

func (cc *CartClient) AddItem(ctx context.Context, rawQuery string, body io.Reader, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodPost, "/api/cart/items", rawQuery, body, headers)
}

func (cc *CartClient) UpdateItem(ctx context.Context, itemId, rawQuery string, body io.Reader, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodPatch, "/api/cart/items/"+itemId, rawQuery, body, headers)
}

func (cc *CartClient) RemoveItem(ctx context.Context, itemId, rawQuery string, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodDelete, "/api/cart/items/"+itemId, rawQuery, nil, headers)
}
