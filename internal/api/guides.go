// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// GuideQuery filters the guide listing.
type GuideQuery struct {
	Category string
	// IncludeDrafts lists unpublished guides as well.
	IncludeDrafts bool
	Page          int
	Size          int
}

// ListGuides returns one page of guides.
func (c *Client) ListGuides(ctx context.Context, q GuideQuery) (*model.Page[model.Guide], error) {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "category", q.Category)
	if q.IncludeDrafts {
		v.Set("drafts", "true")
	}
	return get[model.Page[model.Guide]](ctx, c, "/api/guides", v)
}

// GetGuide returns a single guide.
func (c *Client) GetGuide(ctx context.Context, id string) (*model.Guide, error) {
	return get[model.Guide](ctx, c, "/api/guides/"+url.PathEscape(id), nil)
}

// CreateGuide adds a guide.
func (c *Client) CreateGuide(ctx context.Context, g *model.Guide) (*model.Guide, error) {
	return submit[model.Guide](ctx, c, http.MethodPost, "/api/guides", g)
}

// UpdateGuide replaces a guide.
func (c *Client) UpdateGuide(ctx context.Context, id string, g *model.Guide) (*model.Guide, error) {
	return submit[model.Guide](ctx, c, http.MethodPut, "/api/guides/"+url.PathEscape(id), g)
}

// DeleteGuide removes a guide.
func (c *Client) DeleteGuide(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/guides/" + url.PathEscape(id)}, nil)
}
