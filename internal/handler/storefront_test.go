// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/HariHaran212/Pawradize-sub000/internal/cache"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

func newStorefrontHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	sf := NewStorefrontHandler(h.renderer, h.client, nil)
	h.router.Get(RouteRoot, sf.Home)
	h.router.Get(RoutePets+RouteParamID, sf.Pet)
	h.router.Post(RoutePets+RouteParamID+"/visit", sf.RequestVisit)
	h.router.Get(RouteGuides, sf.Guides)
	h.router.Get(RouteGuides+RouteParamID, sf.Guide)
	h.router.NotFound(sf.NotFound)
	return h
}

func TestStorefrontHome(t *testing.T) {
	h := newStorefrontHarness(t)
	h.backend.AddPet(model.Pet{Name: "Biscuit", Species: "Dog"})
	h.backend.AddProduct(model.Product{Name: "Chew Rope", Price: 499, Stock: 3})

	rr := h.get(t, "/")
	assertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	for _, want := range []string{"Biscuit", "Chew Rope"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestStorefrontHome_BackendDown(t *testing.T) {
	h := newStorefrontHarness(t)
	h.backend.FailNext("/api/pets", http.StatusInternalServerError)

	// The page still renders with the failure as a flash.
	rr := h.get(t, "/")
	assertStatus(t, rr, http.StatusOK)
}

func TestStorefrontHome_AnonymousUnauthorized(t *testing.T) {
	h := newStorefrontHarness(t)
	h.backend.FailNext("/api/pets", http.StatusUnauthorized)

	rr := h.get(t, "/")
	assertRedirect(t, rr, "/login")
	if got := h.flash(t); got != signInMessage {
		t.Errorf("flash = %q, want %q", got, signInMessage)
	}
}

func TestStorefrontPet_NotFound(t *testing.T) {
	h := newStorefrontHarness(t)

	rr := h.get(t, "/pets/404")
	assertStatus(t, rr, http.StatusNotFound)
}

func TestStorefrontGuide(t *testing.T) {
	h := newStorefrontHarness(t)
	published := h.backend.AddGuide(model.Guide{
		Title:     "Crate training",
		Category:  "dogs",
		Body:      "# First night\n\n<script>alert('x')</script>\n\nKeep the crate **near** your bed.",
		Published: true,
	})
	draft := h.backend.AddGuide(model.Guide{Title: "Unfinished", Body: "draft", Category: "cats"})

	t.Run("published guide renders sanitized markdown", func(t *testing.T) {
		rr := h.get(t, "/guides/"+published.ID)
		assertStatus(t, rr, http.StatusOK)
		body := rr.Body.String()
		if !strings.Contains(body, "<strong>near</strong>") {
			t.Errorf("markdown not rendered: %.500s", body)
		}
		if strings.Contains(body, "alert('x')") || strings.Contains(body, "alert(&#39;x&#39;)") {
			t.Error("raw script from the guide body reached the page")
		}
	})

	t.Run("draft is not found", func(t *testing.T) {
		rr := h.get(t, "/guides/"+draft.ID)
		assertStatus(t, rr, http.StatusNotFound)
	})
}

func TestStorefrontGuide_CachedBody(t *testing.T) {
	h := newHarness(t)
	mem := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })
	sf := NewStorefrontHandler(h.renderer, h.client, mem)
	h.router.Get(RouteGuides+RouteParamID, sf.Guide)

	updated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	g := h.backend.AddGuide(model.Guide{
		Title:     "Grooming",
		Body:      "Brush **daily**.",
		Published: true,
		UpdatedAt: updated,
	})
	bodies := cache.NewTyped[string](mem, 0)
	key := fmt.Sprintf("guide:%s:%d", g.ID, updated.UnixNano())

	rr := h.get(t, "/guides/"+g.ID)
	assertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "<strong>daily</strong>") {
		t.Fatalf("markdown not rendered: %.500s", rr.Body.String())
	}
	if _, ok := bodies.Get(context.Background(), key); !ok {
		t.Fatal("rendered body was not cached")
	}

	// A later request for the same revision is served from the cache.
	stored := "<p>from the cache</p>"
	if err := bodies.Set(context.Background(), key, &stored); err != nil {
		t.Fatalf("Set: %v", err)
	}
	rr = h.get(t, "/guides/"+g.ID)
	assertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "from the cache") {
		t.Errorf("cached body not used: %.500s", rr.Body.String())
	}

	// An edit changes the key, so the body is rendered again.
	edited := g
	edited.UpdatedAt = updated.Add(time.Hour)
	got, err := sf.guideHTML(context.Background(), &edited)
	if err != nil {
		t.Fatalf("guideHTML: %v", err)
	}
	if !strings.Contains(string(got), "<strong>daily</strong>") {
		t.Errorf("edited guide served stale body: %q", got)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	m := newMarkdownRenderer()

	got, err := m.HTML("A [link](javascript:alert(1)) and <img src=x onerror=alert(1)>")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(string(got), "javascript:") {
		t.Errorf("javascript URL kept: %s", got)
	}
	if strings.Contains(string(got), "onerror") {
		t.Errorf("event handler kept: %s", got)
	}
}

func TestRequestVisit(t *testing.T) {
	h := newStorefrontHarness(t)
	pet := h.backend.AddPet(model.Pet{Name: "Biscuit", Species: "Dog"})
	h.signIn(t, h.backend.AddUser("Ada", "ada@example.com", testPassword, model.RoleUser))

	t.Run("invalid date", func(t *testing.T) {
		rr := h.post(t, "/pets/"+pet.ID+"/visit", url.Values{"preferred_date": {"next tuesday"}})
		assertRedirect(t, rr, "/pets/"+pet.ID)
		if got := h.flash(t); got != "preferred date must be a date" {
			t.Errorf("flash = %q", got)
		}
		if n := len(h.backend.Visits()); n != 0 {
			t.Errorf("visits = %d, want 0", n)
		}
	})

	t.Run("recorded", func(t *testing.T) {
		rr := h.post(t, "/pets/"+pet.ID+"/visit", url.Values{
			"preferred_date": {"2030-05-01"},
			"message":        {"Weekend works best"},
		})
		assertRedirect(t, rr, "/pets/"+pet.ID)

		visits := h.backend.Visits()
		if len(visits) != 1 {
			t.Fatalf("visits = %d, want 1", len(visits))
		}
		if visits[0].PreferredDate != "2030-05-01" || visits[0].PetName != "Biscuit" {
			t.Errorf("visit = %+v", visits[0])
		}
		if got := h.flash(t); !strings.Contains(got, "Visit requested for 2030-05-01") {
			t.Errorf("flash = %q", got)
		}
	})
}
