package services

import (
	"context"

	"campusmarket/internal/api"
	"campusmarket/internal/session"
)

// FavoriteService wraps the toggle mutation. The backend call completes
// first; local state then takes the server-reported value, never a local
// negation, so rapid double toggles cannot drift.
type FavoriteService struct {
	Backend  *api.Client
	Sessions *session.Service
}

func NewFavoriteService(backend *api.Client, sessions *session.Service) *FavoriteService {
	return &FavoriteService{Backend: backend, Sessions: sessions}
}

// Toggle flips the favorite on the backend and returns the new state.
// Anonymous sessions are rejected before any request is sent. On failure the
// caller leaves its in-memory state unchanged.
func (s *FavoriteService) Toggle(ctx context.Context, sid string, productID int) (bool, error) {
	tok, err := s.Sessions.Token(sid)
	if err != nil {
		return false, err
	}
	if tok == "" {
		return false, session.ErrAnonymous
	}
	res, err := s.Backend.ToggleFavorite(ctx, tok, productID)
	if err != nil {
		return false, err
	}
	return res.IsFavorited, nil
}
