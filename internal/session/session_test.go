package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusmarket/internal/api"
)

func testService(t *testing.T, backendURL string) *Service {
	t.Helper()
	return NewService(api.NewClient(backendURL), testStore(t))
}

// unsignedJWT builds a syntactically valid token with the given exp claim.
// The service never verifies signatures, only reads claims.
func unsignedJWT(exp time.Time) string {
	enc := func(v any) string {
		b, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload := enc(map[string]any{"sub": "u-1", "exp": exp.Unix()})
	return fmt.Sprintf("%s.%s.%s", header, payload, "sig")
}

func TestHydrateAnonymousWithoutToken(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	u, err := svc.Hydrate(context.Background(), "sid-1")
	if err != nil || u != nil {
		t.Fatalf("no token must settle anonymous: user=%v err=%v", u, err)
	}
	if calls != 0 {
		t.Fatalf("anonymous hydrate must not hit the backend, got %d calls", calls)
	}
}

func TestHydrateExpiredTokenSkipsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	svc.Tokens.SetToken("sid-1", unsignedJWT(time.Now().Add(-time.Hour)))

	u, err := svc.Hydrate(context.Background(), "sid-1")
	if err != nil || u != nil {
		t.Fatalf("expired token must settle anonymous: user=%v err=%v", u, err)
	}
	if calls != 0 {
		t.Fatalf("expired claim must short-circuit before the probe, got %d calls", calls)
	}
	if tok, _ := svc.Tokens.Token("sid-1"); tok != "" {
		t.Fatal("expired token must be discarded")
	}
}

func TestHydrateValidTokenResolvesUser(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/v1/auth/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.AuthUser{ID: "u-1", Name: "Ana", Email: "ana@campusucc.edu.co"})
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	svc.Tokens.SetToken("sid-1", unsignedJWT(time.Now().Add(time.Hour)))

	u, err := svc.Hydrate(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if u == nil || u.Name != "Ana" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Avatar == "" {
		t.Fatal("user without a profile picture gets a placeholder avatar")
	}
	if calls != 1 {
		t.Fatalf("hydrate runs exactly one probe, got %d", calls)
	}
}

func TestHydrateInvalidTokenClearsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	svc.Tokens.SetToken("sid-1", unsignedJWT(time.Now().Add(time.Hour)))

	u, err := svc.Hydrate(context.Background(), "sid-1")
	if err != nil || u != nil {
		t.Fatalf("rejected token must settle anonymous: user=%v err=%v", u, err)
	}
	if tok, _ := svc.Tokens.Token("sid-1"); tok != "" {
		t.Fatal("rejected token must be cleared")
	}
}

func TestHydrateBackendDownKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := testService(t, srv.URL)
	tok := unsignedJWT(time.Now().Add(time.Hour))
	svc.Tokens.SetToken("sid-1", tok)

	_, err := svc.Hydrate(context.Background(), "sid-1")
	var unreach *api.UnreachableError
	if !errors.As(err, &unreach) {
		t.Fatalf("want UnreachableError, got %v", err)
	}
	if got, _ := svc.Tokens.Token("sid-1"); got != tok {
		t.Fatal("backend down is not a verdict on the token; it must survive")
	}
}

func TestLoginPersistsTokenAndLogoutClearsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.AuthResponse{
			AccessToken: "issued-token",
			User:        api.AuthUser{ID: "u-1", Name: "Ana"},
		})
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	u, err := svc.Login(context.Background(), "sid-1", "ana@campusucc.edu.co", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Name != "Ana" {
		t.Fatalf("unexpected user %+v", u)
	}
	if tok, _ := svc.Token("sid-1"); tok != "issued-token" {
		t.Fatalf("token not persisted, got %q", tok)
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if tok, _ := svc.Token("sid-1"); tok != "" {
		t.Fatalf("logout must clear the token, got %q", tok)
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Credenciales inválidas"})
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	svc.Tokens.SetToken("sid-1", "existing")

	if _, err := svc.Login(context.Background(), "sid-1", "ana@campusucc.edu.co", "wrong"); err == nil {
		t.Fatal("want login error")
	}
	if tok, _ := svc.Token("sid-1"); tok != "existing" {
		t.Fatalf("failed login must not touch the stored token, got %q", tok)
	}
}

func TestUserFromResolvesAvatar(t *testing.T) {
	svc := testService(t, "http://localhost:8080")

	u := svc.userFrom(api.AuthUser{ID: "u-1", ProfilePictureURL: "/uploads/profiles/u-1.jpg"})
	if u.Avatar != "http://localhost:8080/uploads/profiles/u-1.jpg" {
		t.Fatalf("relative profile picture must resolve against the backend, got %q", u.Avatar)
	}

	u = svc.userFrom(api.AuthUser{ID: "u-1"})
	if u.Avatar == "" {
		t.Fatal("missing profile picture must fall back to a placeholder")
	}
}
