// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session_test

import (
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/HariHaran212/Pawradize-sub000/internal/session"
	"github.com/HariHaran212/Pawradize-sub000/internal/testutil"
)

func TestNew_DevMode(t *testing.T) {
	sm := session.New(testutil.TestMemoryDB(t), true)

	if sm.Store == nil {
		t.Fatal("expected Store to be initialized")
	}
	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name != "pawradise_session" {
		t.Errorf("Cookie.Name = %q, want pawradise_session", sm.Cookie.Name)
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := session.New(testutil.TestMemoryDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-pawradise" {
		t.Errorf("expected __Host-pawradise cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := session.NewWithStore(memstore.New(), true)

	if sm.Lifetime != session.Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, session.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
	if !sm.Cookie.Persist {
		t.Error("expected Cookie.Persist = true")
	}
}

func TestTokenStore_Absent(t *testing.T) {
	sm := testutil.SessionManager()
	store := session.NewTokenStore(sm)
	ctx := testutil.LoadSession(t, sm)

	if got := store.Token(ctx); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
}

func TestTokenStore_SetAndClear(t *testing.T) {
	sm := session.NewWithStore(memstore.New(), true)
	store := session.NewTokenStore(sm)
	ctx := testutil.LoadSession(t, sm)

	sm.Put(ctx, "cart", "keep-me")

	if err := store.SetToken(ctx, "tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := store.Token(ctx); got != "tok-123" {
		t.Errorf("Token() = %q, want tok-123", got)
	}

	if err := store.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if got := store.Token(ctx); got != "" {
		t.Errorf("Token() after clear = %q, want empty", got)
	}
	if got := sm.GetString(ctx, "cart"); got != "keep-me" {
		t.Errorf("cart key = %q, want it untouched by ClearToken", got)
	}
}

func TestTokenStore_ReadIsPure(t *testing.T) {
	sm := session.NewWithStore(memstore.New(), true)
	store := session.NewTokenStore(sm)
	ctx := testutil.LoadSession(t, sm)

	_ = store.Token(ctx)
	if status := sm.Status(ctx); status != scs.Unmodified {
		t.Errorf("Status after read = %v, want Unmodified", status)
	}
}
