// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// VisitQuery filters the visit request listing.
type VisitQuery struct {
	Status string
	Page   int
	Size   int
}

// RequestVisit files a visit request for a pet on behalf of the caller.
func (c *Client) RequestVisit(ctx context.Context, v model.VisitRequest) (*model.VisitRequest, error) {
	return submit[model.VisitRequest](ctx, c, http.MethodPost, "/api/visit-requests", v)
}

// ListVisits returns one page of visit requests.
func (c *Client) ListVisits(ctx context.Context, q VisitQuery) (*model.Page[model.VisitRequest], error) {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "status", q.Status)
	return get[model.Page[model.VisitRequest]](ctx, c, "/api/visit-requests", v)
}

// UpdateVisitStatus moves a visit request to status.
func (c *Client) UpdateVisitStatus(ctx context.Context, id, status string) (*model.VisitRequest, error) {
	body := map[string]string{"status": status}
	return submit[model.VisitRequest](ctx, c, http.MethodPatch, "/api/visit-requests/"+url.PathEscape(id)+"/status", body)
}
