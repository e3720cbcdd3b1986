package handlers

import (
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/clients"
)

type DeliveryHandler struct{ c *clients.DeliveryClient }

func NewDeliveryHandler(c *clients.DeliveryClient) *DeliveryHandler { return &DeliveryHandler{c: c} }

func (h *DeliveryHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	resp, err := h.c.GetPrices(r.Context(), r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}
