// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

func newAuthHarness(t *testing.T, lp *middleware.LoginProtection) (*harness, *AuthHandler) {
	t.Helper()
	h := newHarness(t)
	a := NewAuthHandler(h.renderer, h.client, h.resolver, lp)
	h.router.Get(RouteLogin, a.LoginForm)
	h.router.Post(RouteLogin, a.Login)
	h.router.Post(RouteRegister, a.Register)
	h.router.Post(RouteForgotPassword, a.ForgotPassword)
	h.router.Get(RouteOAuthCallback, a.OAuthCallback)
	h.router.Post(RouteLogout, a.Logout)
	h.router.Get(RouteUnauthorized, a.Unauthorized)
	return h, a
}

func TestLogin_LandsOnRoleHome(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleUser, "/"},
		{model.RoleStoreManager, "/manager"},
		{model.RoleAdoptionCoordinator, "/adoption"},
		{model.RoleSuperAdmin, "/admin"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			h, _ := newAuthHarness(t, nil)
			h.backend.AddUser("Pat", "pat@example.com", testPassword, tt.role)

			rr := h.post(t, RouteLogin, url.Values{"email": {"pat@example.com"}, "password": {testPassword}})

			assertRedirect(t, rr, tt.want)
			if h.token(t) == "" {
				t.Error("token not stored after sign-in")
			}
			if got := h.flash(t); got != "Welcome back, Pat!" {
				t.Errorf("flash = %q", got)
			}
		})
	}
}

func TestLogin_InvalidForm(t *testing.T) {
	h, _ := newAuthHarness(t, nil)

	rr := h.post(t, RouteLogin, url.Values{"email": {"not-an-email"}})

	assertStatus(t, rr, http.StatusUnprocessableEntity)
	if !strings.Contains(rr.Body.String(), "email must be a valid email address") {
		t.Error("validation message not rendered")
	}
	if h.backend.Hits("POST /api/auth/login") != 0 {
		t.Error("backend called for an invalid form")
	}
}

func TestLogin_WrongPasswordKeepsSessionAnonymous(t *testing.T) {
	h, _ := newAuthHarness(t, nil)
	h.backend.AddUser("Pat", "pat@example.com", testPassword, model.RoleUser)

	rr := h.post(t, RouteLogin, url.Values{"email": {"pat@example.com"}, "password": {"wrong"}})

	assertStatus(t, rr, http.StatusUnauthorized)
	body := rr.Body.String()
	if !strings.Contains(body, msgInvalidCredentials) {
		t.Error("credentials message not rendered")
	}
	if !strings.Contains(body, `value="pat@example.com"`) {
		t.Error("email not echoed back into the form")
	}
	if h.cookie != "" && h.token(t) != "" {
		t.Error("token stored after a failed sign-in")
	}
}

func TestLogin_Lockout(t *testing.T) {
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	t.Cleanup(lp.Close)
	h, _ := newAuthHarness(t, lp)
	h.backend.AddUser("Pat", "pat@example.com", testPassword, model.RoleUser)

	bad := url.Values{"email": {"pat@example.com"}, "password": {"wrong"}}
	rr := h.post(t, RouteLogin, bad)
	assertStatus(t, rr, http.StatusUnauthorized)
	if !strings.Contains(rr.Body.String(), "2 attempt(s) left") {
		t.Errorf("remaining attempts not shown: %.300s", rr.Body.String())
	}
	h.post(t, RouteLogin, bad)
	rr = h.post(t, RouteLogin, bad)
	if !strings.Contains(rr.Body.String(), "Too many failed attempts") {
		t.Error("lockout message not shown on the locking attempt")
	}

	calls := h.backend.Hits("POST /api/auth/login")
	rr = h.post(t, RouteLogin, url.Values{"email": {"pat@example.com"}, "password": {testPassword}})
	assertStatus(t, rr, http.StatusTooManyRequests)
	if h.backend.Hits("POST /api/auth/login") != calls {
		t.Error("locked account still reached the backend")
	}
}

func TestRegister(t *testing.T) {
	h, _ := newAuthHarness(t, nil)

	rr := h.post(t, RouteRegister, url.Values{
		"name":             {"Nia"},
		"email":            {"nia@example.com"},
		"password":         {testPassword},
		"password_confirm": {testPassword},
	})

	assertRedirect(t, rr, "/")
	if h.token(t) == "" {
		t.Error("new account not signed in")
	}
}

func TestRegister_Conflict(t *testing.T) {
	h, _ := newAuthHarness(t, nil)
	h.backend.AddUser("Nia", "nia@example.com", testPassword, model.RoleUser)

	rr := h.post(t, RouteRegister, url.Values{
		"name":             {"Nia Two"},
		"email":            {"nia@example.com"},
		"password":         {testPassword},
		"password_confirm": {testPassword},
	})

	assertStatus(t, rr, http.StatusConflict)
	if !strings.Contains(rr.Body.String(), "An account with this email already exists.") {
		t.Error("conflict message not rendered")
	}
	if !strings.Contains(rr.Body.String(), `value="Nia Two"`) {
		t.Error("name not echoed back")
	}
}

func TestForgotPassword_DoesNotRevealAccounts(t *testing.T) {
	h, _ := newAuthHarness(t, nil)

	rr := h.post(t, RouteForgotPassword, url.Values{"email": {"nobody@example.com"}})

	assertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if !strings.Contains(body, "a reset link is on its way") {
		t.Error("generic confirmation not rendered")
	}
	if strings.Contains(body, `name="email"`) {
		t.Error("form still shown after the request was sent")
	}
}

func TestOAuthCallback(t *testing.T) {
	h, _ := newAuthHarness(t, nil)
	u := h.backend.AddUser("Oli", "oli@example.com", testPassword, model.RoleAdoptionCoordinator)
	token := h.backend.IssueToken(u.ID)

	rr := h.get(t, RouteOAuthCallback+"?token="+url.QueryEscape(token))

	assertRedirect(t, rr, "/adoption")
	if got := h.token(t); got != token {
		t.Errorf("stored token = %q, want %q", got, token)
	}
}

func TestOAuthCallback_Error(t *testing.T) {
	h, _ := newAuthHarness(t, nil)

	rr := h.get(t, RouteOAuthCallback+"?error=access_denied")

	assertRedirect(t, rr, RouteLogin)
	if got := h.flash(t); got != "Social sign-in failed: access_denied" {
		t.Errorf("flash = %q", got)
	}
}

func TestOAuthCallback_RejectedToken(t *testing.T) {
	h, _ := newAuthHarness(t, nil)

	rr := h.get(t, RouteOAuthCallback+"?token=forged")

	assertRedirect(t, rr, RouteLogin)
	if h.token(t) != "" {
		t.Error("rejected token kept in the session")
	}
}

func TestLogout(t *testing.T) {
	h, _ := newAuthHarness(t, nil)
	u := h.backend.AddUser("Pat", "pat@example.com", testPassword, model.RoleUser)
	h.signIn(t, u)

	rr := h.post(t, RouteLogout, nil)

	assertRedirect(t, rr, RouteLogin)
	if h.token(t) != "" {
		t.Error("token kept after sign-out")
	}
	if got := h.flash(t); got != "You have been signed out." {
		t.Errorf("flash = %q", got)
	}
}

func TestUnauthorizedPage(t *testing.T) {
	h, _ := newAuthHarness(t, nil)
	u := h.backend.AddUser("Sam", "sam@example.com", testPassword, model.RoleStoreManager)
	h.signIn(t, u)

	rr := h.get(t, RouteUnauthorized)

	assertStatus(t, rr, http.StatusForbidden)
	if !strings.Contains(rr.Body.String(), `href="/manager"`) {
		t.Error("home link does not point at the role home")
	}
}
