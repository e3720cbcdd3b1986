package clients

import (
	"context"
	"net/http"
)

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

// FetchRegion returns the user's stored region, used to pre-seed the
// delivery form.
func (ac *AuthClient) FetchRegion(ctx context.Context, token string) (string, error) {
	var body struct {
		User struct {
			Region string `json:"region"`
		} `json:"user"`
	}
	if err := ac.c.DoJSON(ctx, http.MethodGet, "/api/auth/me", token, nil, &body); err != nil {
		return "", err
	}
	return body.User.Region, nil
}
