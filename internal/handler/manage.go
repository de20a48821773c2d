// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// formPage is the data of every create and edit screen.
type formPage[T any] struct {
	Action  string
	IsEdit  bool
	Item    T
	Options []string
	// Price is the product price as typed, kept on a failed submission.
	Price string
}

// actor returns the ID of the signed-in user for audit logs.
func actor(r *http.Request) string {
	if u := identity.UserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// DashboardHandler renders the landing page of a management branch.
type DashboardHandler struct {
	screen
}

// NewDashboardHandler creates a DashboardHandler for shell.
func NewDashboardHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *DashboardHandler {
	return &DashboardHandler{screen: newScreen(renderer, client, shell)}
}

// DashboardData holds data for the dashboard.
type DashboardData struct {
	Stats *model.DashboardStats
}

// Dashboard handles GET on the branch root.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client.DashboardStats(r.Context())
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to load dashboard stats", "shell", h.shell.Name); !ok {
			return
		}
		stats = &model.DashboardStats{}
	}
	h.ok(w, r, "dashboard", h.shell.Title+" dashboard", DashboardData{Stats: stats}, flash)
}
