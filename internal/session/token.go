// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// TokenKey is the session key holding the bearer token.
const TokenKey = "auth_token"

// TokenStore reads and writes the bearer token of the current browser session.
// It knows nothing about users, roles, or the network.
type TokenStore struct {
	sm *scs.SessionManager
}

// NewTokenStore creates a TokenStore over sm.
func NewTokenStore(sm *scs.SessionManager) *TokenStore {
	return &TokenStore{sm: sm}
}

// Token returns the persisted token, or "" when none is stored.
func (s *TokenStore) Token(ctx context.Context) string {
	return s.sm.GetString(ctx, TokenKey)
}

// SetToken persists token under a fresh session ID.
func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session: %w", err)
	}
	s.sm.Put(ctx, TokenKey, token)
	return nil
}

// ClearToken removes the token and renews the session ID.
// Other session data, such as the cart, is kept.
func (s *TokenStore) ClearToken(ctx context.Context) error {
	s.sm.Remove(ctx, TokenKey)
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session: %w", err)
	}
	return nil
}
