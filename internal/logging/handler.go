// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that counts warnings and errors
// per category in Prometheus, so alerting does not depend on log scraping.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Categories attached to counted records.
const (
	CategoryAuth     = "auth"
	CategoryAccess   = "access"
	CategoryAPI      = "api"
	CategoryCart     = "cart"
	CategoryCache    = "cache"
	CategorySecurity = "security"
	CategorySystem   = "system"
)

// CategoryKey is the attribute that sets a record's category explicitly.
const CategoryKey = "category"

var logEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pawradise_log_events_total",
		Help: "Log records at or above the counting level, by level and category.",
	},
	[]string{"level", "category"},
)

// MetricsHandler wraps another handler and counts records at or above a
// threshold level.
type MetricsHandler struct {
	inner    slog.Handler
	level    slog.Level
	category string // set by WithAttrs
	counter  *prometheus.CounterVec
}

// NewMetricsHandler counts WARN and ERROR records passing through inner.
func NewMetricsHandler(inner slog.Handler) *MetricsHandler {
	return &MetricsHandler{inner: inner, level: slog.LevelWarn, counter: logEvents}
}

// Enabled implements slog.Handler.
func (h *MetricsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *MetricsHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		h.counter.WithLabelValues(levelLabel(r.Level), h.categoryOf(r)).Inc()
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *MetricsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		if a.Key == CategoryKey {
			next.category = a.Value.String()
		}
	}
	return &next
}

// WithGroup implements slog.Handler.
func (h *MetricsHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.inner = h.inner.WithGroup(name)
	return &next
}

func levelLabel(l slog.Level) string {
	if l >= slog.LevelError {
		return "error"
	}
	return "warn"
}

// categoryOf prefers an explicit category attribute and otherwise infers
// one from the message.
func (h *MetricsHandler) categoryOf(r slog.Record) string {
	category := h.category
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == CategoryKey {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "access denied"):
		return CategoryAccess
	case strings.Contains(msg, "csrf") || strings.Contains(msg, "rate limit"):
		return CategorySecurity
	case strings.Contains(msg, "sign-in") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "token") || strings.Contains(msg, "session"):
		return CategoryAuth
	case strings.Contains(msg, "api") || strings.Contains(msg, "backend") || strings.Contains(msg, "circuit"):
		return CategoryAPI
	case strings.Contains(msg, "cart"):
		return CategoryCart
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	default:
		return CategorySystem
	}
}
