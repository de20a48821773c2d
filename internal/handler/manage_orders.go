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

// OrdersHandler lets the admin and store manager branches follow orders.
type OrdersHandler struct {
	screen
}

// NewOrdersHandler creates an OrdersHandler for shell.
func NewOrdersHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *OrdersHandler {
	return &OrdersHandler{screen: newScreen(renderer, client, shell)}
}

// OrderData holds data for the order detail screen.
type OrderData struct {
	Order    *model.Order
	Statuses []string
}

// List handles GET /orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	query := api.OrderQuery{
		Status: strings.ToUpper(r.URL.Query().Get("status")),
		Page:   pageParam(r),
		Size:   managePageSize,
	}
	page, err := h.client.ListOrders(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list orders", "shell", h.shell.Name); !ok {
			return
		}
	}
	filters := map[string]string{"status": query.Status}
	h.ok(w, r, "orders", "Orders", newListPage(page, h.shell.Path(RouteOrders), r, filters), flash)
}

// Show handles GET /orders/{id}.
func (h *OrdersHandler) Show(w http.ResponseWriter, r *http.Request) {
	order, err := h.client.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if !h.loaded(w, r, err, "order") {
		return
	}
	h.ok(w, r, "order", "Order #"+order.ID, OrderData{Order: order, Statuses: model.OrderStatuses}, "")
}

// UpdateStatus handles POST /orders/{id}/status.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := h.shell.Path(RouteOrders, id)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := orderStatusForm{Status: strings.ToUpper(trimmed(r, "status"))}
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, back, msg)
		return
	}

	order, err := h.client.UpdateOrderStatus(r.Context(), id, form.Status)
	if err != nil {
		h.failed(w, r, back, err, "failed to update order status", "order_id", id)
		return
	}
	slog.Info("order status changed", "order_id", id, "status", order.Status, "by", actor(r))
	flashSuccess(w, r, h.renderer, back, "Order marked "+strings.ToLower(order.Status)+".")
}
