// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

// ProductsHandler manages the shop catalogue for the admin and store
// manager branches.
type ProductsHandler struct {
	screen
}

// NewProductsHandler creates a ProductsHandler for shell.
func NewProductsHandler(renderer *render.Renderer, client *api.Client, shell render.Shell) *ProductsHandler {
	return &ProductsHandler{screen: newScreen(renderer, client, shell)}
}

func (h *ProductsHandler) listPath() string {
	return h.shell.Path(RouteProducts)
}

// centsInput formats cents for a price input: 1299 becomes "12.99".
func centsInput(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// List handles GET /products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.ProductQuery{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Page:     pageParam(r),
		Size:     managePageSize,
	}
	page, err := h.client.ListProducts(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list products", "shell", h.shell.Name); !ok {
			return
		}
	}
	filters := map[string]string{"q": query.Search, "category": query.Category}
	h.ok(w, r, "products", "Products", newListPage(page, h.listPath(), r, filters), flash)
}

// New handles GET /products/new.
func (h *ProductsHandler) New(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, "product_form", "New product", formPage[*model.Product]{
		Action: h.listPath(),
		Item:   &model.Product{},
	}, "")
}

// Create handles POST /products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseProductForm(r)
	if msg := validateForm(form); msg != "" {
		h.renderInvalid(w, r, "New product", h.listPath(), "", form, msg)
		return
	}

	product, err := h.client.CreateProduct(r.Context(), form.product())
	if err != nil {
		h.failed(w, r, h.shell.Path(RouteProducts, RouteSuffixNew), err, "failed to create product")
		return
	}
	slog.Info("product created", "product_id", product.ID, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), product.Name+" has been added to the shop.")
}

// Edit handles GET /products/edit/{id}.
func (h *ProductsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.client.GetProduct(r.Context(), id)
	if !h.loaded(w, r, err, "product") {
		return
	}
	h.ok(w, r, "product_form", "Edit "+product.Name, formPage[*model.Product]{
		Action: h.shell.Path(RouteProducts, "edit", id),
		IsEdit: true,
		Item:   product,
		Price:  centsInput(product.Price),
	}, "")
}

// Update handles POST /products/edit/{id}.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editPath := h.shell.Path(RouteProducts, "edit", id)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := parseProductForm(r)
	if msg := validateForm(form); msg != "" {
		h.renderInvalid(w, r, "Edit product", editPath, id, form, msg)
		return
	}

	product, err := h.client.UpdateProduct(r.Context(), id, form.product())
	if err != nil {
		h.failed(w, r, editPath, err, "failed to update product", "product_id", id)
		return
	}
	slog.Info("product updated", "product_id", id, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), product.Name+" has been updated.")
}

// Delete handles POST /products/delete/{id}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.DeleteProduct(r.Context(), id); err != nil {
		h.failed(w, r, h.listPath(), err, "failed to delete product", "product_id", id)
		return
	}
	slog.Info("product deleted", "product_id", id, "by", actor(r))
	flashSuccess(w, r, h.renderer, h.listPath(), "Product removed.")
}

// renderInvalid re-renders the form with the submitted values. The price is
// echoed as typed since it may not parse.
func (h *ProductsHandler) renderInvalid(w http.ResponseWriter, r *http.Request, title, action, id string, form productForm, msg string) {
	item := &model.Product{
		ID:          id,
		Name:        form.Name,
		Category:    form.Category,
		Description: form.Description,
		Stock:       max(form.Stock, 0),
		ImageURL:    form.ImageURL,
	}
	h.render(w, r, http.StatusUnprocessableEntity, "product_form", title, formPage[*model.Product]{
		Action: action,
		IsEdit: id != "",
		Item:   item,
		Price:  form.Price,
	}, msg)
}
