package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// query serializes only the fields that are set; absent constraints are not
// sent as empty parameters.
func (f Filters) query() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.CategoryID != 0 {
		v.Set("categoryId", strconv.Itoa(f.CategoryID))
	}
	if f.MinPrice != 0 {
		v.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		v.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		v.Set("sortOrder", f.SortOrder)
	}
	if f.Limit != 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v.Encode()
}

func (c *Client) ListProducts(ctx context.Context, f Filters) ([]Product, error) {
	path := "/api/v1/products"
	if q := f.query(); q != "" {
		path += "?" + q
	}
	var out []Product
	if err := c.do(ctx, "GET", path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var out Product
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/products/%d", id), "", nil, &out)
	return out, err
}

// RecordContact registers a contact event for a product. Callers treat it as
// fire-and-forget: a failure must not block the contact action itself.
func (c *Client) RecordContact(ctx context.Context, id int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/api/v1/products/%d/contact", id), "", nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]ProductCategory, error) {
	var out []ProductCategory
	if err := c.do(ctx, "GET", "/api/v1/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req CreateProductRequest) (Product, error) {
	var out Product
	if token == "" {
		return out, ErrNoToken
	}
	err := c.do(ctx, "POST", "/api/v1/products", token, req, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	if token == "" {
		return ErrNoToken
	}
	return c.do(ctx, "DELETE", "/api/v1/products/"+url.PathEscape(id), token, nil, nil)
}
