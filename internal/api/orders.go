// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// OrderQuery filters the management order listing.
type OrderQuery struct {
	Status string
	Page   int
	Size   int
}

// PlaceOrder submits the cart as an order for the caller.
func (c *Client) PlaceOrder(ctx context.Context, o model.NewOrder) (*model.Order, error) {
	return submit[model.Order](ctx, c, http.MethodPost, "/api/orders", o)
}

// MyOrders lists the caller's own orders.
func (c *Client) MyOrders(ctx context.Context, page, size int) (*model.Page[model.Order], error) {
	return get[model.Page[model.Order]](ctx, c, "/api/orders/my", pageQuery(page, size))
}

// ListOrders lists every order.
func (c *Client) ListOrders(ctx context.Context, q OrderQuery) (*model.Page[model.Order], error) {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "status", q.Status)
	return get[model.Page[model.Order]](ctx, c, "/api/orders", v)
}

// GetOrder returns a single order.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return get[model.Order](ctx, c, "/api/orders/"+url.PathEscape(id), nil)
}

// UpdateOrderStatus moves an order to status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*model.Order, error) {
	body := map[string]string{"status": status}
	return submit[model.Order](ctx, c, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", body)
}
