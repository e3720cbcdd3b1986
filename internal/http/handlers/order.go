package handlers

import (
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/clients"
)

type OrderHandler struct{ c *clients.OrderClient }

func NewOrderHandler(c *clients.OrderClient) *OrderHandler { return &OrderHandler{c: c} }

func (h *OrderHandler) ListOrdersMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.c.ListOrders(r.Context(), r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderId := r.PathValue("orderId")
	resp, err := h.c.GetOrder(r.Context(), orderId, r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}
