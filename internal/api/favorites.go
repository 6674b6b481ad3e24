package api

import (
	"context"
	"fmt"
)

// FavoriteIDs returns the product ids the token's user has favorited. One
// call per listing load; enrichment is a membership test, not N+1 checks.
func (c *Client) FavoriteIDs(ctx context.Context, token string) ([]int, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	var out []int
	if err := c.do(ctx, "GET", "/api/v1/favorites", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ToggleResult struct {
	IsFavorited bool   `json:"isFavorited"`
	Message     string `json:"message"`
}

// ToggleFavorite flips the favorite on the backend and reports the resulting
// state. Callers apply the returned value, never a local negation.
func (c *Client) ToggleFavorite(ctx context.Context, token string, productID int) (ToggleResult, error) {
	var out ToggleResult
	if token == "" {
		return out, ErrNoToken
	}
	err := c.do(ctx, "POST", fmt.Sprintf("/api/v1/favorites/%d/toggle", productID), token, nil, &out)
	return out, err
}

func (c *Client) AddFavorite(ctx context.Context, token string, productID int) error {
	if token == "" {
		return ErrNoToken
	}
	return c.do(ctx, "POST", fmt.Sprintf("/api/v1/favorites/%d", productID), token, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, productID int) error {
	if token == "" {
		return ErrNoToken
	}
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/v1/favorites/%d", productID), token, nil, nil)
}

func (c *Client) CheckFavorite(ctx context.Context, token string, productID int) (bool, error) {
	if token == "" {
		return false, ErrNoToken
	}
	var out struct {
		IsFavorited bool `json:"isFavorited"`
	}
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/favorites/%d/check", productID), token, nil, &out)
	return out.IsFavorited, err
}
