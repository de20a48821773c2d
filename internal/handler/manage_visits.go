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

// VisitsHandler handles the visit request queue of the admin and adoption
// branches.
type VisitsHandler struct {
	screen
}

// NewVisitsHandler creates a VisitsHandler for shell.
func NewVisitsHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *VisitsHandler {
	return &VisitsHandler{screen: newScreen(renderer, client, shell)}
}

// VisitsData holds data for the visit request list.
type VisitsData struct {
	listPage[model.VisitRequest]
	Statuses []string
}

// List handles GET /visit-requests.
func (h *VisitsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := api.VisitQuery{
		Status: strings.ToUpper(r.URL.Query().Get("status")),
		Page:   pageParam(r),
		Size:   managePageSize,
	}
	page, err := h.client.ListVisits(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list visit requests", "shell", h.shell.Name); !ok {
			return
		}
	}
	data := VisitsData{
		listPage: newListPage(page, h.shell.Path(RouteVisits), r, map[string]string{"status": query.Status}),
		Statuses: model.VisitStatuses,
	}
	h.ok(w, r, "visits", "Visit requests", data, flash)
}

// UpdateStatus handles POST /visit-requests/{id}/status.
func (h *VisitsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := returnPath(r, h.shell.Path(RouteVisits))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := visitStatusForm{Status: strings.ToUpper(trimmed(r, "status"))}
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, back, msg)
		return
	}

	visit, err := h.client.UpdateVisitStatus(r.Context(), id, form.Status)
	if err != nil {
		h.failed(w, r, back, err, "failed to update visit request", "visit_id", id)
		return
	}
	slog.Info("visit request status changed", "visit_id", id, "status", visit.Status, "by", actor(r))
	flashSuccess(w, r, h.renderer, back, "Visit request "+strings.ToLower(visit.Status)+".")
}
