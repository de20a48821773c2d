// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// PetQuery filters the pet listing.
type PetQuery struct {
	Search  string
	Species string
	Status  string
	Page    int
	Size    int
}

func (q PetQuery) values() url.Values {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "search", q.Search)
	setIf(v, "species", q.Species)
	setIf(v, "status", q.Status)
	return v
}

// ListPets returns one page of pets.
func (c *Client) ListPets(ctx context.Context, q PetQuery) (*model.Page[model.Pet], error) {
	return get[model.Page[model.Pet]](ctx, c, "/api/pets", q.values())
}

// GetPet returns a single pet.
func (c *Client) GetPet(ctx context.Context, id string) (*model.Pet, error) {
	return get[model.Pet](ctx, c, "/api/pets/"+url.PathEscape(id), nil)
}

// CreatePet adds a pet listing.
func (c *Client) CreatePet(ctx context.Context, p *model.Pet) (*model.Pet, error) {
	return submit[model.Pet](ctx, c, http.MethodPost, "/api/pets", p)
}

// UpdatePet replaces a pet listing.
func (c *Client) UpdatePet(ctx context.Context, id string, p *model.Pet) (*model.Pet, error) {
	return submit[model.Pet](ctx, c, http.MethodPut, "/api/pets/"+url.PathEscape(id), p)
}

// DeletePet removes a pet listing.
func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/pets/" + url.PathEscape(id)}, nil)
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
