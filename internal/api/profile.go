// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	return get[model.User](ctx, c, "/api/profile/me", nil)
}

// UpdateProfile saves the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (*model.User, error) {
	return submit[model.User](ctx, c, http.MethodPut, "/api/profile/me", p)
}
