package api

import "context"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, "POST", "/api/v1/auth/login", "", req, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, "POST", "/api/v1/auth/register", "", req, &out)
	return out, err
}

// Profile resolves the user behind a bearer token. A single call per app
// session; the caller discards the token when it fails.
func (c *Client) Profile(ctx context.Context, token string) (AuthUser, error) {
	var out AuthUser
	if token == "" {
		return out, ErrNoToken
	}
	err := c.do(ctx, "GET", "/api/v1/auth/me", token, nil, &out)
	return out, err
}
