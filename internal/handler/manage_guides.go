// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/internal/util"
)

// GuidesHandler manages care guides, drafts included, for the admin and
// adoption branches.
type GuidesHandler struct {
	screen
}

// NewGuidesHandler creates a GuidesHandler for shell.
func NewGuidesHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *GuidesHandler {
	return &GuidesHandler{screen: newScreen(renderer, client, shell)}
}

func (h *GuidesHandler) listPath() string {
	return h.shell.Path(RouteGuides)
}

// List handles GET /guides.
func (h *GuidesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := util.Slugify(r.URL.Query().Get("category"))
	page, err := h.client.ListGuides(r.Context(), api.GuideQuery{
		Category:      category,
		IncludeDrafts: true,
		Page:          pageParam(r),
		Size:          managePageSize,
	})
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list guides", "shell", h.shell.Name); !ok {
			return
		}
	}
	filters := map[string]string{"category": category}
	h.ok(w, r, "guides", "Care guides", newListPage(page, h.listPath(), r, filters), flash)
}

// New handles GET /guides/new.
func (h *GuidesHandler) New(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, "guide_form", "New guide", formPage[*model.Guide]{
		Action: h.listPath(),
		Item:   &model.Guide{},
	}, "")
}

// Create handles POST /guides.
func (h *GuidesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseGuideForm(r)
	if msg := validateForm(form); msg != "" {
		h.render(w, r, http.StatusUnprocessableEntity, "guide_form", "New guide", formPage[*model.Guide]{
			Action: h.listPath(),
			Item:   form.guide(),
		}, msg)
		return
	}

	g := form.guide()
	if u := identity.UserFromContext(r.Context()); u != nil {
		g.Author = u.Name
	}
	guide, err := h.client.CreateGuide(r.Context(), g)
	if err != nil {
		h.failed(w, r, h.shell.Path(RouteGuides, RouteSuffixNew), err, "failed to create guide")
		return
	}
	slog.Info("guide created", "guide_id", guide.ID, "published", guide.Published, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), "\""+guide.Title+"\" has been saved.")
}

// Edit handles GET /guides/edit/{id}.
func (h *GuidesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	guide, err := h.client.GetGuide(r.Context(), id)
	if !h.loaded(w, r, err, "guide") {
		return
	}
	h.ok(w, r, "guide_form", "Edit guide", formPage[*model.Guide]{
		Action: h.shell.Path(RouteGuides, "edit", id),
		IsEdit: true,
		Item:   guide,
	}, "")
}

// Update handles POST /guides/edit/{id}.
func (h *GuidesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editPath := h.shell.Path(RouteGuides, "edit", id)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseGuideForm(r)
	if msg := validateForm(form); msg != "" {
		g := form.guide()
		g.ID = id
		h.render(w, r, http.StatusUnprocessableEntity, "guide_form", "Edit guide", formPage[*model.Guide]{
			Action: editPath,
			IsEdit: true,
			Item:   g,
		}, msg)
		return
	}

	guide, err := h.client.UpdateGuide(r.Context(), id, form.guide())
	if err != nil {
		h.failed(w, r, editPath, err, "failed to update guide", "guide_id", id)
		return
	}
	slog.Info("guide updated", "guide_id", id, "published", guide.Published, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), "\""+guide.Title+"\" has been updated.")
}

// Delete handles POST /guides/delete/{id}.
func (h *GuidesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.DeleteGuide(r.Context(), id); err != nil {
		h.failed(w, r, h.listPath(), err, "failed to delete guide", "guide_id", id)
		return
	}
	slog.Info("guide deleted", "guide_id", id, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), "Guide removed.")
}
