// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// UserQuery filters the user listing.
type UserQuery struct {
	Search string
	Role   model.Role
	Page   int
	Size   int
}

// ListUsers returns one page of accounts.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*model.Page[model.User], error) {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "search", q.Search)
	setIf(v, "role", string(q.Role))
	return get[model.Page[model.User]](ctx, c, "/api/users", v)
}

// UpdateUserRole assigns role to the account id.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	body := map[string]model.Role{"role": role}
	return submit[model.User](ctx, c, http.MethodPatch, "/api/users/"+url.PathEscape(id)+"/role", body)
}

// DashboardStats returns the counters shown on management dashboards.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return get[model.DashboardStats](ctx, c, "/api/dashboard/stats", nil)
}
