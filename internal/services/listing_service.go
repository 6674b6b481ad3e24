package services

import (
	"context"
	"log"

	"campusmarket/internal/api"
	"campusmarket/internal/catalog"
	"campusmarket/internal/domain"
	"campusmarket/internal/session"
)

// ListingService runs the shared listing pipeline every product-bearing view
// uses: fetch, normalize, enrich. Filtering, sorting and pagination happen
// on the result via the catalog package, per view.
type ListingService struct {
	Backend  *api.Client
	Sessions *session.Service
}

func NewListingService(backend *api.Client, sessions *session.Service) *ListingService {
	return &ListingService{Backend: backend, Sessions: sessions}
}

// Load fetches and normalizes products, then annotates favorites for the
// session's user. Anonymous sessions skip enrichment entirely. A failed
// favorite fetch degrades to an unfavorited listing instead of failing the
// load; a failed product fetch propagates so the view can show the error
// over an empty list.
func (s *ListingService) Load(ctx context.Context, sid string, f api.Filters) ([]domain.Product, error) {
	raw, err := s.Backend.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	products := catalog.Normalize(raw, s.Backend.BaseURL)

	tok, err := s.Sessions.Token(sid)
	if err != nil || tok == "" {
		return products, nil
	}
	ids, err := s.Backend.FavoriteIDs(ctx, tok)
	if err != nil {
		log.Printf("[listing] favorite enrichment skipped: %v", err)
		return products, nil
	}
	catalog.Enrich(products, ids)
	return products, nil
}

// LoadFavorites resolves the user's favorite set and fetches each product.
// Items the backend no longer serves are skipped. Everything returned is
// favorited by construction.
func (s *ListingService) LoadFavorites(ctx context.Context, sid string) ([]domain.Product, error) {
	tok, err := s.Sessions.Token(sid)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, session.ErrAnonymous
	}
	ids, err := s.Backend.FavoriteIDs(ctx, tok)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		raw, err := s.Backend.GetProduct(ctx, id)
		if err != nil {
			log.Printf("[listing] favorite product %d skipped: %v", id, err)
			continue
		}
		p := catalog.Normalize([]api.Product{raw}, s.Backend.BaseURL)[0]
		p.IsFavorited = true
		products = append(products, p)
	}
	return products, nil
}

// LoadOwn returns the session user's own listings, favorite-annotated. The
// favorite set resolves before annotation; that ordering is the one
// dependency in the dashboard's fetch sequence.
func (s *ListingService) LoadOwn(ctx context.Context, sid, userID string) ([]domain.Product, error) {
	raw, err := s.Backend.ListProducts(ctx, api.Filters{})
	if err != nil {
		return nil, err
	}
	own := raw[:0]
	for _, r := range raw {
		if r.UserID == userID {
			own = append(own, r)
		}
	}
	products := catalog.Normalize(own, s.Backend.BaseURL)

	tok, err := s.Sessions.Token(sid)
	if err != nil || tok == "" {
		return products, nil
	}
	ids, err := s.Backend.FavoriteIDs(ctx, tok)
	if err != nil {
		log.Printf("[listing] favorite enrichment skipped: %v", err)
		return products, nil
	}
	catalog.Enrich(products, ids)
	return products, nil
}

// LoadOne fetches a single product and checks its favorite state for the
// session's user.
func (s *ListingService) LoadOne(ctx context.Context, sid string, id int) (domain.Product, error) {
	raw, err := s.Backend.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	p := catalog.Normalize([]api.Product{raw}, s.Backend.BaseURL)[0]

	tok, err := s.Sessions.Token(sid)
	if err != nil || tok == "" {
		return p, nil
	}
	fav, err := s.Backend.CheckFavorite(ctx, tok, id)
	if err != nil {
		log.Printf("[listing] favorite check skipped for %d: %v", id, err)
		return p, nil
	}
	p.IsFavorited = fav
	return p, nil
}
