// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/session"
	"github.com/HariHaran212/Pawradize-sub000/internal/testutil"
)

// stubProfiles answers Me with a fixed user or error and records the
// token each call carried.
type stubProfiles struct {
	user      *model.User
	err       error
	calls     atomic.Int32
	lastToken string
}

func (s *stubProfiles) Me(ctx context.Context) (*model.User, error) {
	s.calls.Add(1)
	if t, ok := api.TokenFromContext(ctx); ok {
		s.lastToken = t
	}
	if s.err != nil {
		return nil, s.err
	}
	u := *s.user
	return &u, nil
}

type fixture struct {
	resolver *Resolver
	profiles *stubProfiles
	tokens   *session.TokenStore
	ctx      context.Context
}

func newFixture(t *testing.T, user *model.User, err error) *fixture {
	t.Helper()
	sm := testutil.SessionManager()
	tokens := session.NewTokenStore(sm)
	profiles := &stubProfiles{user: user, err: err}

	return &fixture{
		resolver: NewResolver(tokens, profiles, testutil.DiscardLogger()),
		profiles: profiles,
		tokens:   tokens,
		ctx:      testutil.LoadSession(t, sm),
	}
}

func jwtWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func assertCleared(t *testing.T, s *Session) {
	t.Helper()
	if s.IsAuthenticated() || s.User != nil || s.Token != "" || s.BasePath != "" {
		t.Errorf("session not cleared: %+v", s)
	}
	if s.Loading {
		t.Error("Loading = true after bootstrap")
	}
}

func TestBootstrap_NoTokenSkipsNetwork(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleUser}, nil)

	s := f.resolver.Bootstrap(f.ctx)

	assertCleared(t, s)
	if n := f.profiles.calls.Load(); n != 0 {
		t.Errorf("profile fetched %d times, want 0", n)
	}
}

func TestBootstrap_FetchFailureClearsToken(t *testing.T) {
	f := newFixture(t, nil, &api.Error{Status: 500, Err: api.ErrUnavailable})
	_ = f.tokens.SetToken(f.ctx, "opaque-token")

	s := f.resolver.Bootstrap(f.ctx)

	assertCleared(t, s)
	if got := f.tokens.Token(f.ctx); got != "" {
		t.Errorf("stored token = %q, want removed", got)
	}
	if n := f.profiles.calls.Load(); n != 1 {
		t.Errorf("profile fetched %d times, want 1", n)
	}
}

func TestBootstrap_BasePathFollowsRole(t *testing.T) {
	for _, role := range append(model.Roles, "MYSTERY") {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture(t, &model.User{ID: "u1", Name: "Ada", Role: role}, nil)
			_ = f.tokens.SetToken(f.ctx, "opaque-token")

			s := f.resolver.Bootstrap(f.ctx)

			if !s.IsAuthenticated() {
				t.Fatal("expected an authenticated session")
			}
			if s.Token != "opaque-token" {
				t.Errorf("Token = %q, want opaque-token", s.Token)
			}
			if s.BasePath != model.BasePath(role) {
				t.Errorf("BasePath = %q, want %q", s.BasePath, model.BasePath(role))
			}
			if s.Loading {
				t.Error("Loading = true after bootstrap")
			}
			if f.profiles.lastToken != "opaque-token" {
				t.Errorf("fetch carried token %q", f.profiles.lastToken)
			}
		})
	}
}

func TestBootstrap_ExpiredJWTSkipsNetwork(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleUser}, nil)
	_ = f.tokens.SetToken(f.ctx, jwtWithExp(t, time.Now().Add(-time.Minute)))

	s := f.resolver.Bootstrap(f.ctx)

	assertCleared(t, s)
	if f.tokens.Token(f.ctx) != "" {
		t.Error("expired token was not removed")
	}
	if n := f.profiles.calls.Load(); n != 0 {
		t.Errorf("profile fetched %d times for an expired token", n)
	}
}

func TestBootstrap_ValidJWT(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleSuperAdmin}, nil)
	_ = f.tokens.SetToken(f.ctx, jwtWithExp(t, time.Now().Add(time.Hour)))

	s := f.resolver.Bootstrap(f.ctx)

	if s.BasePath != "/admin" {
		t.Errorf("BasePath = %q, want /admin", s.BasePath)
	}
}

func TestBootstrap_FetchesProfileEveryTime(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleStoreManager}, nil)
	_ = f.tokens.SetToken(f.ctx, "opaque-token")

	s := f.resolver.Bootstrap(f.ctx)
	if s.BasePath != "/manager" {
		t.Errorf("BasePath = %q, want /manager", s.BasePath)
	}

	// The backend revokes the token between two requests.
	f.profiles.err = &api.Error{Status: 401, Err: api.ErrUnauthorized}
	s = f.resolver.Bootstrap(f.ctx)

	assertCleared(t, s)
	if f.tokens.Token(f.ctx) != "" {
		t.Error("revoked token kept")
	}
	if n := f.profiles.calls.Load(); n != 2 {
		t.Errorf("profile fetched %d times, want 2", n)
	}
}

func TestBootstrap_CancelledKeepsToken(t *testing.T) {
	f := newFixture(t, nil, context.Canceled)
	_ = f.tokens.SetToken(f.ctx, "opaque-token")

	ctx, cancel := context.WithCancel(f.ctx)
	cancel()
	s := f.resolver.Bootstrap(ctx)

	if s.IsAuthenticated() || s.Loading {
		t.Errorf("unexpected session %+v", s)
	}
	if f.tokens.Token(f.ctx) != "opaque-token" {
		t.Error("token removed for a cancelled request")
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleAdoptionCoordinator}, nil)
	s := &Session{}
	ctx := WithSession(f.ctx, s)

	u, err := f.resolver.Login(ctx, "new-token")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Role != model.RoleAdoptionCoordinator {
		t.Errorf("Role = %q", u.Role)
	}
	if f.tokens.Token(ctx) != "new-token" {
		t.Error("token not persisted")
	}
	if s.BasePath != "/adoption" || s.Token != "new-token" || !s.IsAuthenticated() {
		t.Errorf("session not populated: %+v", s)
	}
}

func TestLogin_FailureClearsEverything(t *testing.T) {
	f := newFixture(t, nil, &api.Error{Status: 401, Err: api.ErrUnauthorized})
	s := &Session{}
	ctx := WithSession(f.ctx, s)

	_, err := f.resolver.Login(ctx, "bad-token")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("Login error = %v, want ErrUnauthorized", err)
	}
	if f.tokens.Token(ctx) != "" {
		t.Error("token kept after failed login")
	}
	if s.IsAuthenticated() || s.Token != "" {
		t.Errorf("session populated after failed login: %+v", s)
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1"}, nil)

	if _, err := f.resolver.Login(f.ctx, ""); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("Login(\"\") error = %v, want ErrEmptyToken", err)
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleUser}, nil)
	_ = f.tokens.SetToken(f.ctx, "tok")
	s := f.resolver.Bootstrap(f.ctx)
	ctx := WithSession(f.ctx, s)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.resolver.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if f.tokens.Token(ctx) != "" {
		t.Error("token kept after logout")
	}
	assertCleared(t, s)
}

func TestInvalidate(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleSuperAdmin}, nil)
	_ = f.tokens.SetToken(f.ctx, "tok")
	s := f.resolver.Bootstrap(f.ctx)
	ctx := WithSession(f.ctx, s)

	f.resolver.Invalidate(ctx)

	assertCleared(t, s)
	if !s.Expired {
		t.Error("invalidated session not marked expired")
	}
	if f.tokens.Token(ctx) != "" {
		t.Error("token kept after invalidation")
	}
}

func TestMiddleware_StoresSession(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Role: model.RoleUser}, nil)

	var got *Session
	h := f.resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(f.ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("no session in context")
	}
	if got.Loading || got.IsAuthenticated() {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"opaque", "abc.def", false},
		{"future exp", jwtWithExp(t, now.Add(time.Hour)), false},
		{"past exp", jwtWithExp(t, now.Add(-time.Hour)), true},
		{"no exp", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
			return s
		}(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.token, now); got != tt.want {
				t.Errorf("tokenExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_NilSafe(t *testing.T) {
	var s *Session
	if s.IsAuthenticated() {
		t.Error("nil session reported authenticated")
	}
	if s.Role() != "" {
		t.Error("nil session has a role")
	}
	if UserFromContext(context.Background()) != nil {
		t.Error("UserFromContext without session returned a user")
	}
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1", Name: "Old", Role: model.RoleUser}, nil)
	_ = f.tokens.SetToken(f.ctx, "tok")
	s := f.resolver.Bootstrap(f.ctx)
	ctx := WithSession(f.ctx, s)

	f.resolver.Refresh(ctx, &model.User{ID: "u1", Name: "New", Role: model.RoleUser})

	if s.User.Name != "New" || s.Token != "tok" {
		t.Errorf("session = %+v, want refreshed user with same token", s)
	}
	if f.tokens.Token(ctx) != "tok" {
		t.Error("Refresh touched the stored token")
	}
}

func TestRefresh_AnonymousIgnored(t *testing.T) {
	f := newFixture(t, &model.User{ID: "u1"}, nil)
	s := &Session{}
	f.resolver.Refresh(WithSession(f.ctx, s), &model.User{ID: "u1"})
	if s.IsAuthenticated() {
		t.Error("anonymous session became authenticated")
	}
}
