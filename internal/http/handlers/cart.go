package handlers

import (
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/clients"
)

type CartHandler struct{ c *clients.CartClient }

func NewCartHandler(c *clients.CartClient) *CartHandler { return &CartHandler{c: c} }

func (h *CartHandler) GetCartMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.c.GetCart(r.Context(), r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}

func (h *CartHandler) AddItemMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.c.AddItem(r.Context(), r.URL.RawQuery, r.Body, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}

func (h *CartHandler) UpdateItemMe(w http.ResponseWriter, r *http.Request) {
	itemId := r.PathValue("itemId")
	resp, err := h.c.UpdateItem(r.Context(), itemId, r.URL.RawQuery, r.Body, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}

func (h *CartHandler) RemoveItemMe(w http.ResponseWriter, r *http.Request) {
	itemId := r.PathValue("itemId")
	resp, err := h.c.RemoveItem(r.Context(), itemId, r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}
