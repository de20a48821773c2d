// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Login exchanges credentials for a token. Bad credentials surface as
// ErrUnauthorized without touching the current session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: creds, public: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a USER account and returns its token.
func (c *Client) Register(ctx context.Context, reg Registration) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: reg, public: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, request{method: http.MethodPost, path: "/api/auth/forgot-password", body: body, public: true}, nil)
}
