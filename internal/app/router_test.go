// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/cache"
	"github.com/HariHaran212/Pawradize-sub000/internal/cart"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/internal/session"
	"github.com/HariHaran212/Pawradize-sub000/internal/testutil"
	"github.com/HariHaran212/Pawradize-sub000/web"
)

const testPassword = "correct-horse-battery"

type testApp struct {
	backend *testutil.Backend
	server  *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := testutil.DiscardLogger()
	backend := testutil.NewBackend(t)
	sm := testutil.SessionManager()
	tokens := session.NewTokenStore(sm)

	cfg := api.DefaultConfig(backend.URL)
	cfg.MaxRetries = 0
	client := api.New(cfg, tokens.Token, logger)

	guides := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = guides.Close() })
	resolver := identity.NewResolver(tokens, client, logger)
	client.SetUnauthorizedHandler(resolver.Invalidate)

	carts := cart.NewService(cart.NewSessionRepository(sm), logger)
	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
		CartCount:      carts.Count,
		Logger:         logger,
	})
	require.NoError(t, err)

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(lp.Close)

	router, err := NewRouter(Deps{
		DB:              testutil.TestMemoryDB(t),
		Sessions:        sm,
		Client:          client,
		Resolver:        resolver,
		Renderer:        renderer,
		Carts:           carts,
		GuideCache:      guides,
		LoginProtection: lp,
		CSRF:            middleware.DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), true),
		Security:        middleware.DefaultSecurityHeadersConfig(true),
		MetricsCIDRs:    []string{"127.0.0.1/32"},
		Logger:          logger,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testApp{backend: backend, server: srv}
}

// browser returns a client that keeps cookies and does not follow redirects.
func (a *testApp) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := c.Get(a.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *testApp) post(t *testing.T, c *http.Client, path string, form url.Values, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *testApp) login(t *testing.T, c *http.Client, email string) *http.Response {
	t.Helper()
	return a.post(t, c, "/login", url.Values{"email": {email}, "password": {testPassword}}, nil)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestSuperAdminNavigation(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Ada Admin", "ada@example.com", testPassword, model.RoleSuperAdmin)
	c := a.browser(t)

	resp := a.login(t, c, "ada@example.com")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	resp = a.get(t, c, "/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `class="shell-admin"`)

	resp = a.get(t, c, "/admin/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/manager")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))

	resp = a.get(t, c, "/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestBranchesRenderInTheirShell(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Cora", "cora@example.com", testPassword, model.RoleAdoptionCoordinator)
	pet := a.backend.AddPet(model.Pet{Name: "Biscuit", Species: "Dog"})
	c := a.browser(t)

	resp := a.login(t, c, "cora@example.com")
	require.Equal(t, "/adoption", resp.Header.Get("Location"))

	resp = a.get(t, c, "/adoption/pets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, `href="/adoption/pets/edit/`+pet.ID+`"`)
	assert.NotContains(t, html, "/admin/pets")

	resp = a.get(t, c, "/adoption/products")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), `class="shell-adoption"`)

	resp = a.get(t, c, "/admin/pets")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
}

func TestAnonymousRedirects(t *testing.T) {
	a := newTestApp(t)
	c := a.browser(t)

	for _, path := range []string{"/admin", "/manager/orders", "/adoption/visit-requests", "/account", "/checkout"} {
		resp := a.get(t, c, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp := a.get(t, c, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), `class="shell-public"`)
}

func TestCustomerLandsOnStorefront(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Uma", "uma@example.com", testPassword, model.RoleUser)
	c := a.browser(t)

	resp := a.login(t, c, "uma@example.com")
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = a.get(t, c, "/account")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/admin")
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))

	resp = a.get(t, c, "/unauthorized")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRejectedTokenForcesLogin(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Uma", "uma@example.com", testPassword, model.RoleUser)
	c := a.browser(t)

	a.login(t, c, "uma@example.com")
	require.Equal(t, http.StatusOK, a.get(t, c, "/account").StatusCode)

	a.backend.RevokeAll()

	resp := a.get(t, c, "/account/orders")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = a.get(t, c, "/account")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = a.get(t, c, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRevokedTokenOnScreenWithoutBackendCall(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Root", "root@example.com", testPassword, model.RoleSuperAdmin)
	c := a.browser(t)

	a.login(t, c, "root@example.com")
	require.Equal(t, http.StatusOK, a.get(t, c, "/admin/pets/new").StatusCode)
	before := a.backend.Hits("GET /api/profile/me")

	a.backend.RevokeAll()

	resp := a.get(t, c, "/admin/pets/new")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Greater(t, a.backend.Hits("GET /api/profile/me"), before)
}

func TestRejectedTokenOnScriptRequest(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Uma", "uma@example.com", testPassword, model.RoleUser)
	product := a.backend.AddProduct(model.Product{Name: "Chew toy", Price: 499, Stock: 3})
	c := a.browser(t)

	a.login(t, c, "uma@example.com")
	a.backend.RevokeAll()

	resp := a.post(t, c, "/cart/add", url.Values{"product_id": {product.ID}}, http.Header{
		"X-Requested-With": {"fetch"},
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "/login", out["redirect"])
	assert.Equal(t, false, out["success"])

	resp = a.get(t, c, "/checkout")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCheckoutFlow(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Uma", "uma@example.com", testPassword, model.RoleUser)
	product := a.backend.AddProduct(model.Product{Name: "Chew toy", Price: 499, Stock: 3})
	c := a.browser(t)

	resp := a.post(t, c, "/cart/add", url.Values{"product_id": {product.ID}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	a.post(t, c, "/cart/add", url.Values{"product_id": {product.ID}}, nil)

	resp = a.get(t, c, "/cart")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "$9.98")

	a.login(t, c, "uma@example.com")
	resp = a.post(t, c, "/checkout", url.Values{"address": {"1 Bark Lane"}, "phone": {"555-0100"}}, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/account/orders", resp.Header.Get("Location"))

	orders := a.backend.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, int64(998), orders[0].Total)

	resp = a.get(t, c, "/cart")
	assert.NotContains(t, body(t, resp), "Chew toy")
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)
	a.backend.AddUser("Sam", "sam@example.com", testPassword, model.RoleStoreManager)
	c := a.browser(t)

	resp := a.login(t, c, "sam@example.com")
	require.Equal(t, "/manager", resp.Header.Get("Location"))
	require.Equal(t, http.StatusOK, a.get(t, c, "/manager/orders").StatusCode)

	resp = a.post(t, c, "/logout", nil, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = a.get(t, c, "/manager")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestOpsEndpoints(t *testing.T) {
	a := newTestApp(t)
	c := a.browser(t)

	resp := a.get(t, c, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.get(t, c, "/static/dist/app.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "max-age=")

	resp = a.get(t, c, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
