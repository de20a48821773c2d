// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package identity resolves who the current browser session belongs to.
package identity

import (
	"context"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Session is the resolved identity of one request.
//
// A session is authenticated exactly when User is set, and User is only
// ever set together with Token. Loading is true until Bootstrap finishes.
// Expired is set when the backend rejected the token during the request.
type Session struct {
	Token    string
	User     *model.User
	BasePath string
	Loading  bool
	Expired  bool
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

// Role returns the signed-in user's role, or "" when anonymous.
func (s *Session) Role() model.Role {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}

func (s *Session) set(token string, u *model.User) {
	s.Token = token
	s.User = u
	s.BasePath = model.BasePath(u.Role)
}

func (s *Session) clear() {
	s.Token = ""
	s.User = nil
	s.BasePath = ""
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request's session, or nil when the identity
// middleware has not run.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// UserFromContext returns the signed-in user, or nil.
func UserFromContext(ctx context.Context) *model.User {
	if s := FromContext(ctx); s.IsAuthenticated() {
		return s.User
	}
	return nil
}
