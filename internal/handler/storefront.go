// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/cache"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/internal/util"
)

// StorefrontHandler serves the public pet, shop and guide pages.
type StorefrontHandler struct {
	screen
	markdown *markdownRenderer
	guides   *cache.Typed[string]
}

// NewStorefrontHandler creates a new StorefrontHandler. Rendered guide
// bodies are kept in guides, which may be nil.
func NewStorefrontHandler(renderer *render.Renderer, client *api.Client, guides cache.Cache) *StorefrontHandler {
	h := &StorefrontHandler{
		screen:   newScreen(renderer, client, render.PublicShell),
		markdown: newMarkdownRenderer(),
	}
	if guides != nil {
		h.guides = cache.NewTyped[string](guides, 0)
	}
	return h
}

// HomeData holds data for the home page.
type HomeData struct {
	Pets     []model.Pet
	Products []model.Product
	Guides   []model.Guide
}

// Home handles GET /.
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data HomeData
	var flash string

	pets, err := h.client.ListPets(ctx, api.PetQuery{Status: model.PetAvailable, Size: homeFeatured})
	if err == nil {
		data.Pets = pets.Items
		var products *model.Page[model.Product]
		if products, err = h.client.ListProducts(ctx, api.ProductQuery{Size: homeFeatured}); err == nil {
			data.Products = products.Items
		}
	}
	if err == nil {
		var guides *model.Page[model.Guide]
		if guides, err = h.client.ListGuides(ctx, api.GuideQuery{Size: 3}); err == nil {
			data.Guides = guides.Items
		}
	}
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to load home page"); !ok {
			return
		}
	}
	h.ok(w, r, "home", "Find your new best friend", data, flash)
}

// Pets handles GET /pets.
func (h *StorefrontHandler) Pets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.PetQuery{
		Search:  q.Get("q"),
		Species: q.Get("species"),
		Status:  q.Get("status"),
		Page:    pageParam(r),
		Size:    storefrontPageSize,
	}
	page, err := h.client.ListPets(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list pets"); !ok {
			return
		}
	}
	filters := map[string]string{"q": query.Search, "species": query.Species, "status": query.Status}
	h.ok(w, r, "pets", "Adopt a pet", newListPage(page, RoutePets, r, filters), flash)
}

// PetData holds data for the pet detail page.
type PetData struct {
	Pet     *model.Pet
	MinDate string
}

// Pet handles GET /pets/{id}.
func (h *StorefrontHandler) Pet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.client.GetPet(r.Context(), chi.URLParam(r, "id"))
	if !h.loaded(w, r, err, "pet") {
		return
	}
	data := PetData{
		Pet:     pet,
		MinDate: time.Now().AddDate(0, 0, 1).Format(time.DateOnly),
	}
	h.ok(w, r, "pet", pet.Name, data, "")
}

// RequestVisit handles POST /pets/{id}/visit.
func (h *StorefrontHandler) RequestVisit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := RoutePets + "/" + id
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := parseVisitForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, back, msg)
		return
	}

	visit, err := h.client.RequestVisit(r.Context(), model.VisitRequest{
		PetID:         id,
		PreferredDate: form.PreferredDate,
		Message:       form.Message,
	})
	if err != nil {
		h.failed(w, r, back, err, "failed to request visit", "pet_id", id)
		return
	}
	flashSuccess(w, r, h.renderer, back,
		fmt.Sprintf("Visit requested for %s. The adoption team will be in touch.", visit.PreferredDate))
}

// Shop handles GET /shop.
func (h *StorefrontHandler) Shop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := api.ProductQuery{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Page:     pageParam(r),
		Size:     storefrontPageSize,
	}
	page, err := h.client.ListProducts(r.Context(), query)
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list products"); !ok {
			return
		}
	}
	filters := map[string]string{"q": query.Search, "category": query.Category}
	h.ok(w, r, "shop", "Shop", newListPage(page, RouteShop, r, filters), flash)
}

// Product handles GET /shop/{id}.
func (h *StorefrontHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.client.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if !h.loaded(w, r, err, "product") {
		return
	}
	h.ok(w, r, "product", product.Name, product, "")
}

// Guides handles GET /guides. Only published guides are listed.
func (h *StorefrontHandler) Guides(w http.ResponseWriter, r *http.Request) {
	category := util.Slugify(r.URL.Query().Get("category"))
	page, err := h.client.ListGuides(r.Context(), api.GuideQuery{
		Category: category,
		Page:     pageParam(r),
		Size:     storefrontPageSize,
	})
	var flash string
	if err != nil {
		var ok bool
		if flash, ok = loadFailure(w, r, h.renderer, err, "failed to list guides"); !ok {
			return
		}
	}
	filters := map[string]string{"category": category}
	if category != "" {
		filters["label"] = util.Unslug(category)
	}
	h.ok(w, r, "guides", "Care guides", newListPage(page, RouteGuides, r, filters), flash)
}

// GuideData holds data for the guide page.
type GuideData struct {
	Guide *model.Guide
	Body  template.HTML
}

// Guide handles GET /guides/{id}. Drafts are not shown on the storefront.
func (h *StorefrontHandler) Guide(w http.ResponseWriter, r *http.Request) {
	guide, err := h.client.GetGuide(r.Context(), chi.URLParam(r, "id"))
	if !h.loaded(w, r, err, "guide") {
		return
	}
	if !guide.Published {
		h.NotFound(w, r)
		return
	}
	body, err := h.guideHTML(r.Context(), guide)
	if err != nil {
		logAndInternalError(w, "failed to render guide", "guide_id", guide.ID, "error", err)
		return
	}
	h.ok(w, r, "guide", guide.Title, GuideData{Guide: guide, Body: body}, "")
}

// guideHTML returns the sanitized body of g. The cache key carries the
// update time, so an edited guide is rendered afresh.
func (h *StorefrontHandler) guideHTML(ctx context.Context, g *model.Guide) (template.HTML, error) {
	key := fmt.Sprintf("guide:%s:%d", g.ID, g.UpdatedAt.UnixNano())
	if h.guides != nil {
		if body, ok := h.guides.Get(ctx, key); ok {
			return template.HTML(*body), nil //nolint:gosec // stored after sanitizing
		}
	}

	body, err := h.markdown.HTML(g.Body)
	if err != nil {
		return "", err
	}
	if h.guides != nil {
		safe := string(body)
		if err := h.guides.Set(ctx, key, &safe); err != nil {
			slog.Warn("caching guide body", "guide_id", g.ID, "error", err)
		}
	}
	return body, nil
}

// markdownRenderer converts guide bodies to sanitized HTML.
type markdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// HTML renders src. Raw HTML in src is escaped by goldmark and the output
// is passed through the UGC policy.
func (m *markdownRenderer) HTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	safe := m.policy.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil //nolint:gosec // sanitized by the UGC policy
}
