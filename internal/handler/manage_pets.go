// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// PetsHandler manages pet listings. It is mounted under both the admin and
// the adoption branches.
type PetsHandler struct {
	screen
}

// NewPetsHandler creates a PetsHandler for shell.
func NewPetsHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *PetsHandler {
	return &PetsHandler{screen: newScreen(renderer, client, shell)}
}

func (h *PetsHandler) listPath() string {
	return h.shell.Path(RoutePets)
}

// List handles GET /pets.
func (h *PetsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.PetQuery{
		Search:  q.Get("q"),
		Species: q.Get("species"),
		Status:  q.Get("status"),
		Page:    pageParam(r),
		Size:    managePageSize,
	}
	page, err := h.client.ListPets(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list pets", "shell", h.shell.Name); !ok {
			return
		}
	}
	filters := map[string]string{"q": query.Search, "species": query.Species, "status": query.Status}
	h.ok(w, r, "pets", "Pets", newListPage(page, h.listPath(), r, filters), flash)
}

// New handles GET /pets/new.
func (h *PetsHandler) New(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, "pet_form", "New pet", formPage[*model.Pet]{
		Action:  h.listPath(),
		Item:    &model.Pet{Status: model.PetAvailable},
		Options: model.PetStatuses,
	}, "")
}

// Create handles POST /pets.
func (h *PetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parsePetForm(r)
	if msg := validateForm(form); msg != "" {
		h.render(w, r, http.StatusUnprocessableEntity, "pet_form", "New pet", formPage[*model.Pet]{
			Action:  h.listPath(),
			Item:    form.pet(),
			Options: model.PetStatuses,
		}, msg)
		return
	}

	pet, err := h.client.CreatePet(r.Context(), form.pet())
	if err != nil {
		h.failed(w, r, h.shell.Path(RoutePets, RouteSuffixNew), err, "failed to create pet")
		return
	}
	slog.Info("pet created", "pet_id", pet.ID, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), pet.Name+" has been listed.")
}

// Edit handles GET /pets/edit/{id}.
func (h *PetsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pet, err := h.client.GetPet(r.Context(), id)
	if !h.loaded(w, r, err, "pet") {
		return
	}
	h.ok(w, r, "pet_form", "Edit "+pet.Name, formPage[*model.Pet]{
		Action:  h.shell.Path(RoutePets, "edit", id),
		IsEdit:  true,
		Item:    pet,
		Options: model.PetStatuses,
	}, "")
}

// Update handles POST /pets/edit/{id}.
func (h *PetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editPath := h.shell.Path(RoutePets, "edit", id)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parsePetForm(r)
	if msg := validateForm(form); msg != "" {
		pet := form.pet()
		pet.ID = id
		h.render(w, r, http.StatusUnprocessableEntity, "pet_form", "Edit pet", formPage[*model.Pet]{
			Action:  editPath,
			IsEdit:  true,
			Item:    pet,
			Options: model.PetStatuses,
		}, msg)
		return
	}

	pet, err := h.client.UpdatePet(r.Context(), id, form.pet())
	if err != nil {
		h.failed(w, r, editPath, err, "failed to update pet", "pet_id", id)
		return
	}
	slog.Info("pet updated", "pet_id", id, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), pet.Name+" has been updated.")
}

// Delete handles POST /pets/delete/{id}.
func (h *PetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.DeletePet(r.Context(), id); err != nil {
		h.failed(w, r, h.listPath(), err, "failed to delete pet", "pet_id", id)
		return
	}
	slog.Info("pet deleted", "pet_id", id, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), "Pet removed.")
}
