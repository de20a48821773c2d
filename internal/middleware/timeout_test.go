// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutNormalRequest(t *testing.T) {
	handler := Timeout(5 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pet", "rex")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("success"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if rr.Header().Get("X-Pet") != "rex" {
		t.Errorf("handler header not copied: %v", rr.Header())
	}
	if body := rr.Body.String(); body != "success" {
		t.Errorf("body = %q, want success", body)
	}
}

func TestTimeoutSlowRequest(t *testing.T) {
	late := make(chan error, 1)
	release := make(chan struct{})
	handler := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, err := w.Write([]byte("too late"))
		late <- err
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	close(release)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	select {
	case err := <-late:
		if !errors.Is(err, http.ErrHandlerTimeout) {
			t.Errorf("late write error = %v, want ErrHandlerTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never finished")
	}
	if rr.Body.String() != "Request timeout" {
		t.Errorf("body = %q, late write leaked into the response", rr.Body.String())
	}
}

func TestTimeoutWriterImplicitStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	tw := &timeoutWriter{w: rr, h: make(http.Header)}

	_, _ = tw.Write([]byte("a"))
	tw.WriteHeader(http.StatusTeapot)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 from the first write", rr.Code)
	}
}

func TestTimeoutPropagatesPanic(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	defer func() {
		if p := recover(); p != "boom" {
			t.Errorf("recovered %v, want boom", p)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
