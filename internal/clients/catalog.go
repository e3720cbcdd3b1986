package clients

import (
	"context"
	"net/http"
)

type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

func (cc *CatalogClient) ListProducts(ctx context.Context, rawQuery string, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodGet, "/api/products", rawQuery, nil, headers)
}

func (cc *CatalogClient) GetProduct(ctx context.Context, id, rawQuery string, headers http.Header) (*http.Response, error) {
	return cc.c.Do(ctx, http.MethodGet, "/api/products/"+id, rawQuery, nil, headers)
}
