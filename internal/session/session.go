package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusmarket/internal/api"
	"campusmarket/internal/catalog"
	"campusmarket/internal/domain"
)

// ErrAnonymous marks operations that need a signed-in user.
var ErrAnonymous = errors.New("not authenticated")

// Service owns the auth lifecycle: Unknown -> {Authenticated | Anonymous},
// with Authenticated -> Anonymous on logout or token invalidation. Hydration
// runs at most one profile probe; an invalid token is discarded, never
// retried.
type Service struct {
	Backend *api.Client
	Tokens  *Store
}

func NewService(backend *api.Client, tokens *Store) *Service {
	return &Service{Backend: backend, Tokens: tokens}
}

// Hydrate resolves the current user for a browser session. No token means
// anonymous; a token that is expired by its own claims is dropped without a
// network call; otherwise a single profile probe decides. A failed probe
// clears the token and settles anonymous rather than erroring the app.
func (s *Service) Hydrate(ctx context.Context, sid string) (*domain.User, error) {
	tok, err := s.Tokens.Token(sid)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, nil
	}
	if tokenExpired(tok) {
		_ = s.Tokens.ClearToken(sid)
		return nil, nil
	}
	raw, err := s.Backend.Profile(ctx, tok)
	if err != nil {
		var unreach *api.UnreachableError
		if errors.As(err, &unreach) {
			// Backend down is not a verdict on the token; stay anonymous for
			// this request but keep the token for the next start.
			return nil, err
		}
		_ = s.Tokens.ClearToken(sid)
		return nil, nil
	}
	u := s.userFrom(raw)
	return &u, nil
}

// Login authenticates against the backend and persists the issued token. A
// failure leaves any existing session untouched.
func (s *Service) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	resp, err := s.Backend.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.SetToken(sid, resp.AccessToken); err != nil {
		return nil, err
	}
	u := s.userFrom(resp.User)
	return &u, nil
}

func (s *Service) Register(ctx context.Context, sid, name, email, password string) (*domain.User, error) {
	resp, err := s.Backend.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.SetToken(sid, resp.AccessToken); err != nil {
		return nil, err
	}
	u := s.userFrom(resp.User)
	return &u, nil
}

// Logout clears the stored token. Completes client-side; no server
// round-trip.
func (s *Service) Logout(sid string) error {
	return s.Tokens.ClearToken(sid)
}

// Token exposes the raw bearer token for authorized calls; "" for
// anonymous sessions.
func (s *Service) Token(sid string) (string, error) {
	return s.Tokens.Token(sid)
}

// tokenExpired inspects the token's own exp claim without verifying the
// signature (the backend owns the secret). Tokens we cannot parse are left
// for the profile probe to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// userFrom builds the session identity. Profile pictures get the same
// relative-to-absolute rewrite as product images; users without one get the
// deterministic placeholder derived from their id.
func (s *Service) userFrom(raw api.AuthUser) domain.User {
	avatar := catalog.AvatarFor(raw.ID)
	if raw.ProfilePictureURL != "" {
		avatar = catalog.ResolveImageURL(raw.ProfilePictureURL, s.Backend.BaseURL)
	}
	u := domain.User{
		ID:            raw.ID,
		Name:          raw.Name,
		Email:         raw.Email,
		Role:          raw.Role,
		Avatar:        avatar,
		PhoneVerified: raw.PhoneVerified,
	}
	if raw.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.CreatedAt); err == nil {
			u.CreatedAt = t
		}
	}
	return u
}
