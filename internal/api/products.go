// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// ProductQuery filters the product listing.
type ProductQuery struct {
	Search   string
	Category string
	Page     int
	Size     int
}

// ListProducts returns one page of products.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*model.Page[model.Product], error) {
	v := pageQuery(q.Page, q.Size)
	setIf(v, "search", q.Search)
	setIf(v, "category", q.Category)
	return get[model.Page[model.Product]](ctx, c, "/api/products", v)
}

// GetProduct returns a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return get[model.Product](ctx, c, "/api/products/"+url.PathEscape(id), nil)
}

// CreateProduct adds a product.
func (c *Client) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return submit[model.Product](ctx, c, http.MethodPost, "/api/products", p)
}

// UpdateProduct replaces a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, p *model.Product) (*model.Product, error) {
	return submit[model.Product](ctx, c, http.MethodPut, "/api/products/"+url.PathEscape(id), p)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/products/" + url.PathEscape(id)}, nil)
}
