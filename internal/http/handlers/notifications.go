package handlers

import (
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/clients"
)

type NotificationsHandler struct{ c *clients.NotificationsClient }

func NewNotificationsHandler(c *clients.NotificationsClient) *NotificationsHandler {
	return &NotificationsHandler{c: c}
}

func (h *NotificationsHandler) ListMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.c.GetNotifications(r.Context(), r.URL.RawQuery, r.Header)
	if err != nil {
		WriteUpstreamError(w, r, http.StatusBadGateway, "backend request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()
	CopyUpstreamResponse(w, resp)
}
