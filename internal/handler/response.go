// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the Pawradise screens. Handlers are thin:
// they validate input, call the REST backend and render through the shell
// they were constructed with.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

const (
	sessionExpiredMessage = "Your session has expired. Please sign in again."
	signInMessage         = "Please sign in to continue."
)

// flashAndRedirect sets a flash message and redirects with 303.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndInternalError logs an error and writes a 500 response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// wantsJSON reports whether the caller is a script expecting JSON.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") == "fetch"
}

// sessionExpired ends a request whose backend call was rejected as
// unauthorized. The token is already gone; the browser is sent to sign in.
// Visitors who never signed in are not told their session expired.
func sessionExpired(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	message := signInMessage
	if s := identity.FromContext(r.Context()); s != nil && s.Expired {
		message = sessionExpiredMessage
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success":  false,
			"error":    message,
			"redirect": middleware.LoginPath,
		})
		return
	}
	flashAndRedirect(w, r, renderer, middleware.LoginPath, message, render.FlashInfo)
}

// apiFailure handles a failed backend call made by a form post. The
// unauthorized condition ends the session; anything else becomes a flash on
// redirectURL.
func apiFailure(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string, err error, logMsg string, args ...any) {
	if errors.Is(err, api.ErrUnauthorized) {
		sessionExpired(w, r, renderer)
		return
	}
	logAPIError(err, logMsg, args...)

	if wantsJSON(r) {
		writeJSONError(w, apiStatus(err), api.Message(err))
		return
	}
	flashError(w, r, renderer, redirectURL, api.Message(err))
}

// loadFailure handles a failed backend read made while rendering a page.
// It returns the flash to show in place of the data, or false when the
// response has already been written.
func loadFailure(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, err error, logMsg string, args ...any) (string, bool) {
	if errors.Is(err, api.ErrUnauthorized) {
		sessionExpired(w, r, renderer)
		return "", false
	}
	logAPIError(err, logMsg, args...)
	return api.Message(err), true
}

func logAPIError(err error, logMsg string, args ...any) {
	args = append(args, "error", err)
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		slog.Warn(logMsg, args...)
		return
	}
	slog.Error(logMsg, args...)
}

func apiStatus(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
