// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cart holds the shopping cart of a browser session.
package cart

import (
	"encoding/json"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Cart is an ordered list of items keyed by product ID.
type Cart struct {
	Items []Item `json:"items"`
}

// Item is one product line. Price is in cents.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// UnmarshalJSON accepts the older {"id", "qty"} item shape and defaults a
// missing quantity to 1.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID string `json:"productId"`
		ID        string `json:"id"`
		Name      string `json:"name"`
		Price     int64  `json:"price"`
		Quantity  *int   `json:"quantity"`
		Qty       *int   `json:"qty"`
		ImageURL  string `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Item{
		ProductID: raw.ProductID,
		Name:      raw.Name,
		Price:     raw.Price,
		Quantity:  1,
		ImageURL:  raw.ImageURL,
	}
	if i.ProductID == "" {
		i.ProductID = raw.ID
	}
	switch {
	case raw.Quantity != nil:
		i.Quantity = *raw.Quantity
	case raw.Qty != nil:
		i.Quantity = *raw.Qty
	}
	return nil
}

// Subtotal returns price times quantity.
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Find returns the index of productID, or -1.
func (c *Cart) Find(productID string) int {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return idx
		}
	}
	return -1
}

// Add puts one unit of p in the cart. A product already present has its
// quantity incremented instead of gaining a second line.
func (c *Cart) Add(p model.Product) {
	if idx := c.Find(p.ID); idx >= 0 {
		c.Items[idx].Quantity++
		return
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
	})
}

// Update sets the quantity of productID. A quantity of zero or less
// removes the line. Unknown products are ignored.
func (c *Cart) Update(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	if idx := c.Find(productID); idx >= 0 {
		c.Items[idx].Quantity = qty
	}
}

// Remove deletes the line for productID, keeping the order of the rest.
func (c *Cart) Remove(productID string) {
	if idx := c.Find(productID); idx >= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total returns the sum of all subtotals in cents.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// OrderItems converts the cart into order lines.
func (c *Cart) OrderItems() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return items
}

// normalize drops lines that cannot be ordered and merges duplicates that
// older encodings may contain.
func (c *Cart) normalize() {
	merged := make([]Item, 0, len(c.Items))
	seen := make(map[string]int, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		if idx, ok := seen[it.ProductID]; ok {
			merged[idx].Quantity += it.Quantity
			continue
		}
		seen[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	c.Items = merged
}

// decode parses a stored cart. Both the {"items": [...]} form and a bare
// item array are accepted.
func decode(data []byte) (*Cart, error) {
	c := &Cart{}
	if len(data) == 0 {
		return c, nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &c.Items); err != nil {
			return &Cart{}, err
		}
	} else if err := json.Unmarshal(data, c); err != nil {
		return &Cart{}, err
	}
	c.normalize()
	return c, nil
}
