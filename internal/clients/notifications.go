package clients

import (
	"context"
	"net/http"
)

type NotificationsClient struct{ c *Client }

func NewNotificationsClient(c *Client) *NotificationsClient { return &NotificationsClient{c: c} }

// GetNotifications is the polling target for the storefront's notification
// widget.
func (nc *NotificationsClient) GetNotifications(ctx context.Context, rawQuery string, headers http.Header) (*http.Response, error) {
	return nc.c.Do(ctx, http.MethodGet, "/api/notifications", rawQuery, nil, headers)
}
