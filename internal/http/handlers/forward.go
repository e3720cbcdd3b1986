package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
	"github.com/timeless-elegance/storefront-gateway/internal/middleware"
	"github.com/timeless-elegance/storefront-gateway/internal/model"
)

func CopyUpstreamResponse(w http.ResponseWriter, resp *http.Response) {
	// Copy headers (avoid hop-by-hop)
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func WriteUpstreamError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

func errorBody(r *http.Request, msg string) model.ErrorResponse {
	return model.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteCheckoutError maps the checkout error taxonomy to HTTP statuses:
// 401 unauthenticated (client clears its token and redirects to login),
// 422 for form validation, 502 for backend/configuration failures. The form
// state lives client-side, so every failure leaves it editable for retry.
func WriteCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	cid := middleware.GetCorrelationID(r.Context())

	var vErr *checkout.ValidationError
	var uErr *checkout.UpstreamError

	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		WriteJSON(w, http.StatusUnauthorized, model.ErrorResponse{
			Error:         "unauthenticated",
			CorrelationID: cid,
		})
	case errors.As(err, &vErr):
		WriteJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:         vErr.Reason,
			Field:         vErr.Field,
			CorrelationID: cid,
		})
	case errors.Is(err, checkout.ErrPriceTableInvalid):
		WriteJSON(w, http.StatusBadGateway, model.ErrorResponse{
			Error:         err.Error(),
			CorrelationID: cid,
		})
	case errors.As(err, &uErr):
		msg := uErr.Message
		if msg == "" {
			msg = "backend request failed"
		}
		WriteJSON(w, http.StatusBadGateway, model.ErrorResponse{
			Error:         msg,
			CorrelationID: cid,
		})
	default:
		WriteJSON(w, http.StatusBadGateway, model.ErrorResponse{
			Error:         "backend request failed: " + err.Error(),
			CorrelationID: cid,
		})
	}
}
