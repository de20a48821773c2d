// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// LoginPath is where Logout sends the browser.
const LoginPath = "/login"

// ErrEmptyToken is returned by Login for a blank token.
var ErrEmptyToken = errors.New("empty token")

// ErrTokenExpired reports a token whose exp claim has passed.
var ErrTokenExpired = errors.New("token expired")

// TokenStore persists the bearer token of the current browser session.
type TokenStore interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// ProfileFetcher loads the profile of the token carried by ctx.
type ProfileFetcher interface {
	Me(ctx context.Context) (*model.User, error)
}

// Resolver turns a stored token into a Session. One Resolver is shared by
// all requests. Profiles are never cached: every bootstrap asks the backend,
// so a revoked token is noticed on the next request.
type Resolver struct {
	tokens   TokenStore
	profiles ProfileFetcher
	logger   *slog.Logger
	now      func() time.Time
}

// NewResolver creates a Resolver.
func NewResolver(tokens TokenStore, profiles ProfileFetcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		tokens:   tokens,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// Bootstrap resolves the session for ctx. It never fails: any problem with
// the stored token leaves the token removed and the session anonymous.
func (r *Resolver) Bootstrap(ctx context.Context) *Session {
	s := &Session{Loading: true}
	defer func() { s.Loading = false }()

	token := r.tokens.Token(ctx)
	if token == "" {
		return s
	}

	user, err := r.resolve(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return s
		}
		r.logger.Debug("discarding stored token", "error", err)
		r.forget(ctx)
		return s
	}

	s.set(token, user)
	return s
}

// Login persists token and resolves its profile. On failure the token and
// any session state are cleared and the error is returned. Login never
// navigates; callers route to BasePath(user.Role) themselves.
func (r *Resolver) Login(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	if err := r.tokens.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	user, err := r.resolve(ctx, token)
	if err != nil {
		r.forget(ctx)
		return nil, err
	}

	if s := FromContext(ctx); s != nil {
		s.set(token, user)
	}
	return user, nil
}

// Logout clears the token and session fields, then redirects to the login
// page.
func (r *Resolver) Logout(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	r.forget(ctx)
	http.Redirect(w, req, LoginPath, http.StatusSeeOther)
}

// Invalidate drops the identity of ctx. The API client calls it whenever
// the backend rejects the token.
func (r *Resolver) Invalidate(ctx context.Context) {
	r.logger.Info("session invalidated by backend")
	r.forget(ctx)
	if s := FromContext(ctx); s != nil {
		s.Expired = true
	}
}

func (r *Resolver) resolve(ctx context.Context, token string) (*model.User, error) {
	if tokenExpired(token, r.now()) {
		return nil, ErrTokenExpired
	}

	user, err := r.profiles.Me(api.WithToken(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if user == nil {
		return nil, errors.New("fetching profile: empty response")
	}
	return user, nil
}

// forget clears the stored token and the context session together.
func (r *Resolver) forget(ctx context.Context) {
	if err := r.tokens.ClearToken(ctx); err != nil {
		r.logger.Warn("clearing token", "error", err)
	}
	if s := FromContext(ctx); s != nil {
		s.clear()
	}
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// The signature is not checked; the backend remains the authority. Opaque
// tokens and JWTs without exp are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// Refresh replaces the session user with u, a profile the backend has just
// returned for the current token.
func (r *Resolver) Refresh(ctx context.Context, u *model.User) {
	s := FromContext(ctx)
	if u == nil || !s.IsAuthenticated() {
		return
	}
	s.set(s.Token, u)
}
