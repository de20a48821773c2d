// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	dev := DefaultCSRFConfig(testAuthKey, true)
	if len(dev.TrustedOrigins) == 0 {
		t.Fatal("expected trusted origins in development")
	}
	for _, origin := range dev.TrustedOrigins {
		if strings.Contains(origin, "://") {
			t.Errorf("TrustedOrigin %q should be host:port, not a URL", origin)
		}
	}

	prod := DefaultCSRFConfig(testAuthKey, false)
	if len(prod.TrustedOrigins) != 0 {
		t.Errorf("expected no trusted origins in production, got %v", prod.TrustedOrigins)
	}
	if len(prod.AuthKey) != 32 {
		t.Errorf("AuthKey length = %d, want 32", len(prod.AuthKey))
	}
}

func TestCSRFProtect(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		fetchSite string
		wantCode  int
	}{
		{"same-origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"post without fetch metadata", http.MethodPost, "", http.StatusOK},
		{"cross-site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"cross-site get", http.MethodGet, "cross-site", http.StatusOK},
	}

	handler := CSRF(DefaultCSRFConfig(testAuthKey, false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/cart/add", nil)
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestCSRFCustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false)
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	handler := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called || rr.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, rr.Code)
	}
}
