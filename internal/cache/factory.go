// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config selects and tunes a cache backend.
type Config struct {
	// Redis is used when non-nil; otherwise an in-memory cache is built.
	Redis      *redis.Client
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

// New returns a Redis cache when cfg.Redis is set and an in-memory cache
// otherwise.
func New(cfg Config) Cache {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = time.Minute
	}
	if cfg.Redis != nil {
		return NewRedisCache(cfg.Redis, cfg.Prefix, cfg.DefaultTTL)
	}
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxEntries:      cfg.MaxEntries,
		CleanupInterval: time.Minute,
	})
}
