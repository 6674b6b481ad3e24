package api

import (
	"context"
	"net/url"
)

type UserProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Avatar        string `json:"avatar"`
	PhoneVerified bool   `json:"phoneVerified"`
	CreatedAt     string `json:"createdAt"`
}

func (c *Client) UserProfile(ctx context.Context, userID string) (UserProfile, error) {
	var out UserProfile
	err := c.do(ctx, "GET", "/api/v1/users/"+url.PathEscape(userID)+"/profile", "", nil, &out)
	return out, err
}

func (c *Client) UpdateUserProfile(ctx context.Context, token, userID string, req UpdateProfileRequest) error {
	if token == "" {
		return ErrNoToken
	}
	return c.do(ctx, "PUT", "/api/v1/users/"+url.PathEscape(userID)+"/profile", token, req, nil)
}
