// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Service applies cart mutations and persists the result before returning.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a Service over repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the current cart. Unreadable stored data yields an empty cart.
func (s *Service) Get(ctx context.Context) (*Cart, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			s.logger.Warn("discarding unreadable cart", "error", err)
			return c, nil
		}
		return nil, err
	}
	return c, nil
}

// Count returns the number of units in the cart, or 0 when it cannot be read.
func (s *Service) Count(ctx context.Context) int {
	c, err := s.Get(ctx)
	if err != nil {
		return 0
	}
	return c.Count()
}

// Add puts one unit of p in the cart.
func (s *Service) Add(ctx context.Context, p model.Product) (*Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.Add(p) })
}

// Update sets the quantity of productID; qty <= 0 removes it.
func (s *Service) Update(ctx context.Context, productID string, qty int) (*Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.Update(productID, qty) })
}

// Remove deletes productID from the cart.
func (s *Service) Remove(ctx context.Context, productID string) (*Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.Remove(productID) })
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func(c *Cart) { c.Clear() })
	return err
}

func (s *Service) mutate(ctx context.Context, fn func(*Cart)) (*Cart, error) {
	c, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
