package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestFiltersQueryOmitsZeroFields(t *testing.T) {
	if q := (Filters{}).query(); q != "" {
		t.Fatalf("zero filters must serialize empty, got %q", q)
	}

	q := Filters{Search: "bicicleta", CategoryID: 3, MaxPrice: 100000}.query()
	v, err := url.ParseQuery(q)
	if err != nil {
		t.Fatalf("bad query: %v", err)
	}
	if v.Get("search") != "bicicleta" || v.Get("categoryId") != "3" || v.Get("maxPrice") != "100000" {
		t.Fatalf("unexpected query %q", q)
	}
	for _, absent := range []string{"minPrice", "status", "sortBy", "sortOrder", "limit"} {
		if v.Has(absent) {
			t.Fatalf("%s must not be sent when unset: %q", absent, q)
		}
	}
}

func TestAuthorizedCallsFailFastWithoutToken(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()
	c := NewClient(srv.URL)
	ctx := context.Background()

	if _, err := c.FavoriteIDs(ctx, ""); err != ErrNoToken {
		t.Fatalf("FavoriteIDs: want ErrNoToken, got %v", err)
	}
	if _, err := c.ToggleFavorite(ctx, "", 1); err != ErrNoToken {
		t.Fatalf("ToggleFavorite: want ErrNoToken, got %v", err)
	}
	if _, err := c.CreateProduct(ctx, "", CreateProductRequest{}); err != ErrNoToken {
		t.Fatalf("CreateProduct: want ErrNoToken, got %v", err)
	}
	if _, err := c.Profile(ctx, ""); err != ErrNoToken {
		t.Fatalf("Profile: want ErrNoToken, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("no request may leave the client without a token, got %d", calls)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]int{})
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FavoriteIDs(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer abc" {
		t.Fatalf("authorization header: got %q", got)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Credenciales inválidas"})
	}))
	_, err := NewClient(srv.URL).GetProduct(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message() != "Credenciales inválidas" {
		t.Fatalf("status=%d message=%q", apiErr.Status, apiErr.Message())
	}

	srv.Close()
	_, err = NewClient(srv.URL).GetProduct(context.Background(), 1)
	var unreach *UnreachableError
	if !errors.As(err, &unreach) {
		t.Fatalf("closed server must yield UnreachableError, got %v", err)
	}
}

func TestToggleFavoriteParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/favorites/7/toggle" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(ToggleResult{IsFavorited: true, Message: "Agregado a favoritos"})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).ToggleFavorite(context.Background(), "tok", 7)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !res.IsFavorited || res.Message != "Agregado a favoritos" {
		t.Fatalf("unexpected result %+v", res)
	}
}
