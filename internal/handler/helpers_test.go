// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/cart"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/internal/session"
	"github.com/HariHaran212/Pawradize-sub000/internal/testutil"
	"github.com/HariHaran212/Pawradize-sub000/web"
)

const testPassword = "correct-horse-battery"

// harness wires handlers to an in-memory backend the way main does and acts
// as a single browser: the session cookie is carried between requests.
type harness struct {
	backend  *testutil.Backend
	sm       *scs.SessionManager
	tokens   *session.TokenStore
	client   *api.Client
	resolver *identity.Resolver
	renderer *render.Renderer
	carts    *cart.Service
	router   chi.Router
	cookie   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := testutil.DiscardLogger()
	h := &harness{backend: testutil.NewBackend(t), sm: testutil.SessionManager()}
	h.tokens = session.NewTokenStore(h.sm)

	cfg := api.DefaultConfig(h.backend.URL)
	cfg.MaxRetries = 0
	h.client = api.New(cfg, h.tokens.Token, logger)
	h.resolver = identity.NewResolver(h.tokens, h.client, logger)
	h.client.SetUnauthorizedHandler(h.resolver.Invalidate)
	h.carts = cart.NewService(cart.NewSessionRepository(h.sm), logger)

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	h.renderer, err = render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: h.sm,
		CartCount:      h.carts.Count,
		Logger:         logger,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	h.router = chi.NewRouter()
	h.router.Use(h.sm.LoadAndSave, h.resolver.Middleware)
	return h
}

// signIn stores a fresh backend token for u in the harness session.
func (h *harness) signIn(t *testing.T, u model.User) {
	t.Helper()
	ctx := h.loadSession(t)
	if err := h.tokens.SetToken(ctx, h.backend.IssueToken(u.ID)); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	token, _, err := h.sm.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	h.cookie = token
}

func (h *harness) loadSession(t *testing.T) context.Context {
	t.Helper()
	ctx, err := h.sm.Load(context.Background(), h.cookie)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return ctx
}

// flash returns the pending flash message of the harness session.
func (h *harness) flash(t *testing.T) string {
	t.Helper()
	return h.sm.GetString(h.loadSession(t), "flash")
}

// token returns the bearer token held by the harness session.
func (h *harness) token(t *testing.T) string {
	t.Helper()
	return h.tokens.Token(h.loadSession(t))
}

func (h *harness) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if h.cookie != "" {
		req.AddCookie(&http.Cookie{Name: h.sm.Cookie.Name, Value: h.cookie})
	}
	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name == h.sm.Cookie.Name {
			h.cookie = c.Value
		}
	}
	return rr
}

func (h *harness) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return h.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (h *harness) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(t, req)
}

func (h *harness) postJSON(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "fetch")
	return h.do(t, req)
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d; body: %.300s", rr.Code, want, rr.Body.String())
	}
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	assertStatus(t, rr, http.StatusSeeOther)
	if got := rr.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}
