// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import "net/http"

// Middleware bootstraps the session of every request and stores it in the
// request context before any route guard runs.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s := r.Bootstrap(req.Context())
		next.ServeHTTP(w, req.WithContext(WithSession(req.Context(), s)))
	})
}
