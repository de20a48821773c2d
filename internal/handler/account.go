// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// AccountHandler serves the signed-in customer's profile and orders.
type AccountHandler struct {
	screen
	resolver *identity.Resolver
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(renderer *render.Renderer, client *api.Client, resolver *identity.Resolver) *AccountHandler {
	return &AccountHandler{
		screen:   newScreen(renderer, client, render.PublicShell),
		resolver: resolver,
	}
}

// Profile handles GET /account.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.client.Me(r.Context())
	if !h.loaded(w, r, err, "profile") {
		return
	}
	h.ok(w, r, "account", "My account", user, "")
}

// UpdateProfile handles POST /account.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseProfileForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, redirectAccount, msg)
		return
	}

	user, err := h.client.UpdateProfile(r.Context(), api.ProfileUpdate{
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	})
	if err != nil {
		h.failed(w, r, redirectAccount, err, "failed to update profile")
		return
	}
	h.resolver.Refresh(r.Context(), user)
	flashSuccess(w, r, h.renderer, redirectAccount, "Profile updated.")
}

// Orders handles GET /account/orders.
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	page, err := h.client.MyOrders(r.Context(), pageParam(r), storefrontPageSize)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list own orders"); !ok {
			return
		}
	}
	h.ok(w, r, "orders", "My orders", newListPage(page, redirectAccountOrders, r, nil), flash)
}

// Order handles GET /account/orders/{id}. Orders of other customers are
// reported as not found.
func (h *AccountHandler) Order(w http.ResponseWriter, r *http.Request) {
	order, err := h.client.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if !h.loaded(w, r, err, "order") {
		return
	}
	if user := identity.UserFromContext(r.Context()); user == nil || order.UserID != user.ID {
		h.NotFound(w, r)
		return
	}
	h.ok(w, r, "order", "Order #"+order.ID, order, "")
}
