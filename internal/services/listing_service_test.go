package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"campusmarket/internal/api"
	"campusmarket/internal/session"
)

// fakeBackend serves the product endpoints and counts authorized traffic so
// tests can assert which calls happened.
type fakeBackend struct {
	products      []api.Product
	favoriteIDs   []int
	favoritesFail bool
	favoriteCalls int32
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.products)
	})
	mux.HandleFunc("/api/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/v1/products/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		for _, p := range f.products {
			if p.ID == id {
				json.NewEncoder(w).Encode(p)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/v1/favorites", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.favoriteCalls, 1)
		if f.favoritesFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(f.favoriteIDs)
	})
	return mux
}

func newFixture(t *testing.T, backend *fakeBackend) (*ListingService, *session.Service, func()) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	store, err := session.OpenStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	client := api.NewClient(srv.URL)
	sessions := session.NewService(client, store)
	cleanup := func() {
		srv.Close()
		store.Close()
	}
	return NewListingService(client, sessions), sessions, cleanup
}

func TestLoadAnonymousSkipsFavorites(t *testing.T) {
	backend := &fakeBackend{products: []api.Product{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	svc, _, cleanup := newFixture(t, backend)
	defer cleanup()

	products, err := svc.Load(context.Background(), "sid-anon", api.Filters{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("want 2 products, got %d", len(products))
	}
	for _, p := range products {
		if p.IsFavorited {
			t.Fatal("anonymous load must leave everything unfavorited")
		}
	}
	if n := atomic.LoadInt32(&backend.favoriteCalls); n != 0 {
		t.Fatalf("anonymous load must not fetch favorites, got %d calls", n)
	}
}

func TestLoadEnrichesForAuthenticatedSession(t *testing.T) {
	backend := &fakeBackend{
		products:    []api.Product{{ID: 1}, {ID: 2}, {ID: 3}},
		favoriteIDs: []int{2},
	}
	svc, sessions, cleanup := newFixture(t, backend)
	defer cleanup()
	sessions.Tokens.SetToken("sid-1", "tok")

	products, err := svc.Load(context.Background(), "sid-1", api.Filters{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if products[0].IsFavorited || products[2].IsFavorited || !products[1].IsFavorited {
		t.Fatalf("enrichment wrong: %v %v %v",
			products[0].IsFavorited, products[1].IsFavorited, products[2].IsFavorited)
	}
	if n := atomic.LoadInt32(&backend.favoriteCalls); n != 1 {
		t.Fatalf("enrichment is one favorites fetch, got %d", n)
	}
}

func TestLoadDegradesWhenFavoritesFail(t *testing.T) {
	backend := &fakeBackend{
		products:      []api.Product{{ID: 1}},
		favoritesFail: true,
	}
	svc, sessions, cleanup := newFixture(t, backend)
	defer cleanup()
	sessions.Tokens.SetToken("sid-1", "tok")

	products, err := svc.Load(context.Background(), "sid-1", api.Filters{})
	if err != nil {
		t.Fatalf("a failed favorite fetch must not fail the load: %v", err)
	}
	if len(products) != 1 || products[0].IsFavorited {
		t.Fatalf("degraded load must render unfavorited, got %+v", products)
	}
}

func TestLoadFavoritesRequiresUser(t *testing.T) {
	backend := &fakeBackend{}
	svc, _, cleanup := newFixture(t, backend)
	defer cleanup()

	_, err := svc.LoadFavorites(context.Background(), "sid-anon")
	if !errors.Is(err, session.ErrAnonymous) {
		t.Fatalf("want ErrAnonymous, got %v", err)
	}
}

func TestLoadFavoritesSkipsGoneProducts(t *testing.T) {
	backend := &fakeBackend{
		products:    []api.Product{{ID: 1, Name: "alive"}},
		favoriteIDs: []int{1, 99},
	}
	svc, sessions, cleanup := newFixture(t, backend)
	defer cleanup()
	sessions.Tokens.SetToken("sid-1", "tok")

	products, err := svc.LoadFavorites(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("load favorites: %v", err)
	}
	if len(products) != 1 || products[0].ID != "1" {
		t.Fatalf("gone favorites must be skipped, got %+v", products)
	}
	if !products[0].IsFavorited {
		t.Fatal("favorites view items are favorited by construction")
	}
}

func TestLoadOwnFiltersByOwner(t *testing.T) {
	backend := &fakeBackend{products: []api.Product{
		{ID: 1, UserID: "me"},
		{ID: 2, UserID: "someone-else"},
		{ID: 3, UserID: "me"},
	}}
	svc, _, cleanup := newFixture(t, backend)
	defer cleanup()

	products, err := svc.LoadOwn(context.Background(), "sid-anon", "me")
	if err != nil {
		t.Fatalf("load own: %v", err)
	}
	if len(products) != 2 || products[0].ID != "1" || products[1].ID != "3" {
		t.Fatalf("owner filter wrong: %+v", products)
	}
}
