// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// UsersHandler lists accounts and changes their roles. Only the admin
// branch mounts it.
type UsersHandler struct {
	screen
}

// NewUsersHandler creates a UsersHandler for shell.
func NewUsersHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *UsersHandler {
	return &UsersHandler{screen: newScreen(renderer, client, shell)}
}

// UsersData holds data for the user list.
type UsersData struct {
	listPage[model.User]
	Roles []model.Role
	Self  string
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.UserQuery{
		Search: q.Get("q"),
		Page:   pageParam(r),
		Size:   managePageSize,
	}
	if role, ok := model.ParseRole(q.Get("role")); ok {
		query.Role = role
	}

	page, err := h.client.ListUsers(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list users"); !ok {
			return
		}
	}
	filters := map[string]string{"q": query.Search, "role": string(query.Role)}
	data := UsersData{
		listPage: newListPage(page, h.shell.Path(RouteUsers), r, filters),
		Roles:    model.Roles,
		Self:     actor(r),
	}
	h.ok(w, r, "users", "Users", data, flash)
}

// UpdateRole handles POST /users/{id}/role. Admins cannot change their own
// role, so the last admin cannot lock themselves out.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := returnPath(r, h.shell.Path(RouteUsers))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	if id == actor(r) {
		flashError(w, r, h.renderer, back, "You cannot change your own role.")
		return
	}

	form := roleForm{Role: strings.ToUpper(trimmed(r, "role"))}
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, back, msg)
		return
	}

	user, err := h.client.UpdateUserRole(r.Context(), id, model.Role(form.Role))
	if err != nil {
		h.failed(w, r, back, err, "failed to change user role", "user_id", id)
		return
	}
	slog.Info("user role changed", "user_id", id, "role", user.Role, "by", actor(r))
	flashSuccess(w, r, h.renderer, back, user.Name+" is now "+user.Role.Label()+".")
}
