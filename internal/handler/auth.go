// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mileusna/useragent"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgResetSent          = "If an account exists for that email, a password reset link is on its way."
)

// AuthHandler handles sign-in, registration and sign-out.
type AuthHandler struct {
	renderer   *render.Renderer
	client     *api.Client
	resolver   *identity.Resolver
	protection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(renderer *render.Renderer, client *api.Client, resolver *identity.Resolver, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		renderer:   renderer,
		client:     client,
		resolver:   resolver,
		protection: lp,
	}
}

// authPage holds the values echoed back into auth forms.
type authPage struct {
	Email string
	Name  string
	Phone string
	Sent  bool
}

func (h *AuthHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, screen, title string, page authPage, flash string) {
	data := render.TemplateData{Title: title, Data: page}
	if flash != "" {
		data.Flash = flash
		data.FlashType = render.FlashError
	}
	if err := h.renderer.RenderAuth(w, r, status, screen, data); err != nil {
		logAndInternalError(w, "failed to render auth screen", "screen", screen, "error", err)
	}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "login", "Sign in", authPage{}, "")
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseLoginForm(r)
	page := authPage{Email: form.Email}

	if msg := validateForm(form); msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "login", "Sign in", page, msg)
		return
	}

	if h.protection != nil {
		if locked, remaining := h.protection.IsLocked(form.Email); locked {
			slog.Warn("sign-in attempt on locked account", "email", form.Email, "ip", r.RemoteAddr)
			h.renderForm(w, r, http.StatusTooManyRequests, "login", "Sign in", page,
				fmt.Sprintf("Too many failed attempts. Try again in %s.", remaining.Round(time.Second)))
			return
		}
	}

	auth, err := h.client.Login(r.Context(), api.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrInvalidInput) {
			h.failedAttempt(w, r, form.Email)
			return
		}
		logAPIError(err, "sign-in request failed", "email", form.Email)
		h.renderForm(w, r, apiStatus(err), "login", "Sign in", page, api.Message(err))
		return
	}

	user, err := h.resolver.Login(r.Context(), auth.Token)
	if err != nil {
		logAPIError(err, "failed to resolve profile after sign-in", "email", form.Email)
		h.renderForm(w, r, http.StatusBadGateway, "login", "Sign in", page,
			"Signed in, but your profile could not be loaded. Please try again.")
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccess(form.Email)
	}
	logSignIn(r, user, "password")
	flashSuccess(w, r, h.renderer, landingPath(user), "Welcome back, "+user.Name+"!")
}

func (h *AuthHandler) failedAttempt(w http.ResponseWriter, r *http.Request, email string) {
	msg := msgInvalidCredentials
	if h.protection != nil {
		if locked, lockout := h.protection.RecordFailure(email); locked {
			msg = fmt.Sprintf("Too many failed attempts. Try again in %s.", lockout.Round(time.Second))
		} else if n := h.protection.RemainingAttempts(email); n <= 2 {
			msg = fmt.Sprintf("%s %d attempt(s) left before a temporary lock.", msgInvalidCredentials, n)
		}
	}
	slog.Warn("sign-in failed", "email", email, "ip", r.RemoteAddr)
	h.renderForm(w, r, http.StatusUnauthorized, "login", "Sign in", authPage{Email: email}, msg)
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "register", "Create account", authPage{}, "")
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseRegisterForm(r)
	page := authPage{Email: form.Email, Name: form.Name, Phone: form.Phone}

	if msg := validateForm(form); msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "register", "Create account", page, msg)
		return
	}

	auth, err := h.client.Register(r.Context(), form.registration())
	if err != nil {
		msg := api.Message(err)
		if errors.Is(err, api.ErrConflict) {
			msg = "An account with this email already exists."
		}
		logAPIError(err, "registration failed", "email", form.Email)
		h.renderForm(w, r, apiStatus(err), "register", "Create account", page, msg)
		return
	}

	if auth.Token == "" {
		flashSuccess(w, r, h.renderer, redirectLogin, "Your account has been created. Please sign in.")
		return
	}
	user, err := h.resolver.Login(r.Context(), auth.Token)
	if err != nil {
		logAPIError(err, "failed to resolve profile after registration", "email", form.Email)
		flashSuccess(w, r, h.renderer, redirectLogin, "Your account has been created. Please sign in.")
		return
	}
	slog.Info("user registered", "user_id", user.ID)
	flashSuccess(w, r, h.renderer, landingPath(user), "Welcome to Pawradise, "+user.Name+"!")
}

// ForgotPasswordForm handles GET /forgot-password.
func (h *AuthHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "forgot_password", "Reset password", authPage{}, "")
}

// ForgotPassword handles POST /forgot-password. The response does not
// reveal whether the email is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := forgotForm{Email: trimmed(r, "email")}
	if msg := validateForm(form); msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "forgot_password", "Reset password", authPage{Email: form.Email}, msg)
		return
	}

	if err := h.client.ForgotPassword(r.Context(), form.Email); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			logAPIError(err, "password reset request failed")
			h.renderForm(w, r, http.StatusServiceUnavailable, "forgot_password", "Reset password", authPage{Email: form.Email}, api.Message(err))
			return
		}
		slog.Info("password reset request rejected by backend", "error", err)
	}

	data := render.TemplateData{
		Title:     "Reset password",
		Data:      authPage{Sent: true},
		Flash:     msgResetSent,
		FlashType: render.FlashSuccess,
	}
	if err := h.renderer.RenderAuth(w, r, http.StatusOK, "forgot_password", data); err != nil {
		logAndInternalError(w, "failed to render auth screen", "screen", "forgot_password", "error", err)
	}
}

// OAuthCallback handles GET /oauth/callback?token=...|error=... sent back
// by the backend's social sign-in flow.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		slog.Warn("oauth sign-in failed", "error", e)
		flashError(w, r, h.renderer, redirectLogin, "Social sign-in failed: "+e)
		return
	}
	token := q.Get("token")
	if token == "" {
		flashError(w, r, h.renderer, redirectLogin, "Social sign-in did not return a token.")
		return
	}

	user, err := h.resolver.Login(r.Context(), token)
	if err != nil {
		logAPIError(err, "failed to resolve profile after oauth sign-in")
		flashError(w, r, h.renderer, redirectLogin, "Social sign-in failed. Please try again.")
		return
	}
	logSignIn(r, user, "oauth")
	flashSuccess(w, r, h.renderer, landingPath(user), "Welcome, "+user.Name+"!")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := identity.UserFromContext(r.Context()); user != nil {
		slog.Info("user signed out", "user_id", user.ID)
	}
	h.renderer.SetFlash(r, "You have been signed out.", render.FlashInfo)
	h.resolver.Logout(w, r)
}

// Unauthorized handles GET /unauthorized.
func (h *AuthHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	home := render.PublicShell.BasePath
	if s := identity.FromContext(r.Context()); s.IsAuthenticated() && s.BasePath != "" {
		home = s.BasePath
	}
	err := h.renderer.RenderStatus(w, r, http.StatusForbidden, render.PublicShell, "unauthorized", render.TemplateData{
		Title: "Access denied",
		Data:  map[string]string{"Home": home},
	})
	if err != nil {
		logAndInternalError(w, "failed to render unauthorized page", "error", err)
	}
}

// landingPath is where a freshly signed-in user goes.
func landingPath(user *model.User) string {
	if p := model.BasePath(user.Role); p != "" {
		return p
	}
	return render.PublicShell.BasePath
}

func logSignIn(r *http.Request, user *model.User, method string) {
	ua := useragent.Parse(r.UserAgent())
	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	slog.Info("user signed in",
		"user_id", user.ID,
		"role", user.Role,
		"method", method,
		"ip", r.RemoteAddr,
		"browser", ua.Name,
		"os", ua.OS,
		"device", device)
}
