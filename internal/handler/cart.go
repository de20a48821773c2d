// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/cart"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
)

const msgCartUnavailable = "Your cart could not be saved. Please try again."

// CartHandler handles the cart and checkout.
type CartHandler struct {
	screen
	carts *cart.Service
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(renderer *render.Renderer, client *api.Client, carts *cart.Service) *CartHandler {
	return &CartHandler{
		screen: newScreen(renderer, client, render.PublicShell),
		carts:  carts,
	}
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context())
	flash := ""
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		c, flash = &cart.Cart{}, "Your cart could not be loaded."
	}
	h.ok(w, r, "cart", "Your cart", c, flash)
}

// Add handles POST /cart/add. The product is fetched so the stored price
// and name come from the catalogue, not the form.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	back := returnPath(r, redirectCart)
	id := trimmed(r, "product_id")
	if id == "" {
		h.reject(w, r, back, http.StatusBadRequest, "No product selected.")
		return
	}

	product, err := h.client.GetProduct(r.Context(), id)
	if err != nil {
		h.failed(w, r, back, err, "failed to load product for cart", "product_id", id)
		return
	}
	if !product.InStock() {
		h.reject(w, r, back, http.StatusConflict, product.Name+" is out of stock.")
		return
	}

	c, err := h.carts.Add(r.Context(), *product)
	if err != nil {
		slog.Error("failed to add to cart", "product_id", id, "error", err)
		h.reject(w, r, back, http.StatusInternalServerError, msgCartUnavailable)
		return
	}
	h.done(w, r, back, c, product.Name+" added to your cart.")
}

// Update handles POST /cart/update.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	id := trimmed(r, "product_id")
	qty, err := strconv.Atoi(trimmed(r, "quantity"))
	if id == "" || err != nil {
		h.reject(w, r, redirectCart, http.StatusBadRequest, "Invalid quantity.")
		return
	}

	c, err := h.carts.Update(r.Context(), id, qty)
	if err != nil {
		slog.Error("failed to update cart", "product_id", id, "error", err)
		h.reject(w, r, redirectCart, http.StatusInternalServerError, msgCartUnavailable)
		return
	}
	h.done(w, r, redirectCart, c, "Cart updated.")
}

// Remove handles POST /cart/remove.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	id := trimmed(r, "product_id")
	c, err := h.carts.Remove(r.Context(), id)
	if err != nil {
		slog.Error("failed to remove from cart", "product_id", id, "error", err)
		h.reject(w, r, redirectCart, http.StatusInternalServerError, msgCartUnavailable)
		return
	}
	h.done(w, r, redirectCart, c, "Item removed.")
}

// Clear handles POST /cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context()); err != nil {
		slog.Error("failed to clear cart", "error", err)
		h.reject(w, r, redirectCart, http.StatusInternalServerError, msgCartUnavailable)
		return
	}
	h.done(w, r, redirectCart, &cart.Cart{}, "Cart cleared.")
}

// CheckoutData holds data for the checkout page.
type CheckoutData struct {
	Cart    *cart.Cart
	Address string
	Phone   string
}

// CheckoutForm handles GET /checkout.
func (h *CartHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context())
	if err != nil || c.Empty() {
		flashAndRedirect(w, r, h.renderer, redirectCart, "Your cart is empty.", render.FlashInfo)
		return
	}
	data := CheckoutData{Cart: c}
	if user := identity.UserFromContext(r.Context()); user != nil {
		data.Address, data.Phone = user.Address, user.Phone
	}
	h.ok(w, r, "checkout", "Checkout", data, "")
}

// Checkout handles POST /checkout. The cart is cleared only after the
// backend has accepted the order.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	c, err := h.carts.Get(ctx)
	if err != nil || c.Empty() {
		flashAndRedirect(w, r, h.renderer, redirectCart, "Your cart is empty.", render.FlashInfo)
		return
	}

	form := parseCheckoutForm(r)
	if msg := validateForm(form); msg != "" {
		h.render(w, r, http.StatusUnprocessableEntity, "checkout", "Checkout",
			CheckoutData{Cart: c, Address: form.Address, Phone: form.Phone}, msg)
		return
	}

	order, err := h.client.PlaceOrder(ctx, model.NewOrder{
		Items:           c.OrderItems(),
		ShippingAddress: form.Address,
		Phone:           form.Phone,
	})
	if err != nil {
		h.failed(w, r, redirectCheckout, err, "failed to place order", "items", len(c.Items))
		return
	}

	if err := h.carts.Clear(ctx); err != nil {
		slog.Error("failed to clear cart after order", "order_id", order.ID, "error", err)
	}
	slog.Info("order placed", "order_id", order.ID, "total", order.Total)
	flashSuccess(w, r, h.renderer, redirectAccountOrders,
		"Thank you! Your order for "+model.FormatPrice(order.Total)+" has been placed.")
}

func (h *CartHandler) done(w http.ResponseWriter, r *http.Request, back string, c *cart.Cart, msg string) {
	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{
			"message": msg,
			"count":   c.Count(),
			"total":   model.FormatPrice(c.Total()),
		})
		return
	}
	flashSuccess(w, r, h.renderer, back, msg)
}

func (h *CartHandler) reject(w http.ResponseWriter, r *http.Request, back string, status int, msg string) {
	if wantsJSON(r) {
		writeJSONError(w, status, msg)
		return
	}
	flashError(w, r, h.renderer, back, msg)
}

// returnPath reads the form's "return" field, accepting only local paths.
func returnPath(r *http.Request, fallback string) string {
	p := r.FormValue("return")
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
