package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
	"github.com/timeless-elegance/storefront-gateway/internal/http/dto"
	"github.com/timeless-elegance/storefront-gateway/internal/middleware"
)

type CheckoutHandler struct {
	loader    *checkout.Loader
	submitter *checkout.Submitter
}

func NewCheckoutHandler(loader *checkout.Loader, submitter *checkout.Submitter) *CheckoutHandler {
	return &CheckoutHandler{loader: loader, submitter: submitter}
}

// GetCheckout loads the checkout snapshot: cart, pre-seeded region, and the
// delivery price table, all fetched fresh. Nothing renders unless all three
// reads succeed.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetBearerToken(r.Context())

	snap, err := h.loader.Load(r.Context(), token)
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.CheckoutView{
		Cart:     snap.Cart,
		Region:   snap.Region,
		Prices:   snap.Prices,
		Subtotal: snap.Cart.Subtotal(),
	})
}

// QuoteDelivery recomputes subtotal, delivery price, and total for the
// current form fields. The storefront calls this on every method or region
// change.
func (h *CheckoutHandler) QuoteDelivery(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetBearerToken(r.Context())

	method, err := checkout.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	snap, err := h.loader.Load(r.Context(), token)
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	region := strings.TrimSpace(r.URL.Query().Get("region"))
	if region == "" {
		region = snap.Region
	}

	WriteJSON(w, http.StatusOK, checkout.NewQuote(snap.Cart, snap.Prices, method, region))
}

// SubmitOrder validates the delivery form and creates the order. The
// confirmation body is the only place the new order id is handed back; the
// gateway keeps no record of it.
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetBearerToken(r.Context())

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, errorBody(r, "invalid json"))
		return
	}

	method, err := checkout.ParseMethod(req.DeliveryMethod)
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	snap, err := h.loader.Load(r.Context(), token)
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	result, err := h.submitter.Submit(r.Context(), token, snap.Cart, snap.Prices, checkout.Submission{
		Method:  method,
		Region:  req.Region,
		Address: req.Address,
	})
	if err != nil {
		WriteCheckoutError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, dto.OrderConfirmation{OrderID: result.OrderID})
}
