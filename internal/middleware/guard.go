// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the Pawradise web tier.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Redirect targets used by the guards.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// PublicOnly admits anonymous visitors only. Signed-in users are sent to
// the home of their role.
func PublicOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := resolved(w, r)
			if !ok {
				return
			}
			if s.IsAuthenticated() {
				target := s.BasePath
				if target == "" {
					target = "/"
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticated admits any signed-in user.
func Authenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := resolved(w, r)
			if !ok {
				return
			}
			if !s.IsAuthenticated() {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles admits signed-in users holding one of roles. Anonymous
// visitors go to the login page, other roles to the unauthorized page.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := resolved(w, r)
			if !ok {
				return
			}
			if !s.IsAuthenticated() {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if _, ok := allowed[s.Role()]; !ok {
				slog.Warn("access denied",
					"user_id", s.User.ID,
					"role", string(s.Role()),
					"path", r.URL.Path,
				)
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolved returns the request's session once identity resolution has
// finished. Until then no decision is made: the request is answered with
// 503 and a short Retry-After.
func resolved(w http.ResponseWriter, r *http.Request) (*identity.Session, bool) {
	s := identity.FromContext(r.Context())
	if s == nil || s.Loading {
		w.Header().Set("Retry-After", "1")
		http.Error(w, "Session is still loading. Please retry.", http.StatusServiceUnavailable)
		return nil, false
	}
	return s, true
}
