package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/clients"
	"github.com/timeless-elegance/storefront-gateway/internal/http/dto"
)

type HealthHandler struct {
	Probes []clients.HealthProbe
}

func (h *HealthHandler) Gateway(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.HealthResponse{
		Status:  "ok",
		Service: "storefront-gateway",
	})
}

func (h *HealthHandler) Backend(w http.ResponseWriter, r *http.Request) {
	results := make([]dto.BackendHealth, len(h.Probes))

	for i, probe := range h.Probes {
		res := clients.CheckHealth(r.Context(), probe)
		results[i] = dto.BackendHealth{
			Name:       res.Name,
			OK:         res.OK,
			StatusCode: res.StatusCode,
			Error:      res.Error,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.BackendHealthResponse{
		Status:  "ok",
		Service: "storefront-gateway",
		Backend: results,
	})
}
