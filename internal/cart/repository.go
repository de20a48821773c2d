// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session keys.
const (
	SessionKey   = "cart"
	SessionIDKey = "cart_id"
)

// ErrCorrupt is returned with an empty cart when stored data cannot be decoded.
var ErrCorrupt = errors.New("stored cart is unreadable")

// Repository loads and saves the cart of the browser session in ctx.
type Repository interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

// SessionRepository keeps the cart inside the scs session.
type SessionRepository struct {
	sm *scs.SessionManager
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(sm *scs.SessionManager) *SessionRepository {
	return &SessionRepository{sm: sm}
}

// Load returns the stored cart or an empty one.
func (r *SessionRepository) Load(ctx context.Context) (*Cart, error) {
	c, err := decode(r.sm.GetBytes(ctx, SessionKey))
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return c, nil
}

// Save stores c, or removes the key when c is empty.
func (r *SessionRepository) Save(ctx context.Context, c *Cart) error {
	if c.Empty() {
		r.sm.Remove(ctx, SessionKey)
		return nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	r.sm.Put(ctx, SessionKey, data)
	return nil
}

// RedisRepository keeps the cart in Redis under cart:<id>, with the id held
// in the scs session.
type RedisRepository struct {
	client *redis.Client
	sm     *scs.SessionManager
	ttl    time.Duration
}

// NewRedisRepository creates a RedisRepository. Carts expire after ttl of
// inactivity.
func NewRedisRepository(client *redis.Client, sm *scs.SessionManager, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, sm: sm, ttl: ttl}
}

func redisKey(id string) string {
	return "cart:" + id
}

// Load returns the stored cart or an empty one.
func (r *RedisRepository) Load(ctx context.Context) (*Cart, error) {
	id := r.sm.GetString(ctx, SessionIDKey)
	if id == "" {
		return &Cart{}, nil
	}

	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{}, nil
		}
		return &Cart{}, fmt.Errorf("redis get cart: %w", err)
	}

	c, err := decode(data)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return c, nil
}

// Save stores c with a refreshed TTL, allocating a cart id on first use.
// An empty cart deletes the Redis key.
func (r *RedisRepository) Save(ctx context.Context, c *Cart) error {
	id := r.sm.GetString(ctx, SessionIDKey)

	if c.Empty() {
		if id == "" {
			return nil
		}
		if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
			return fmt.Errorf("redis del cart: %w", err)
		}
		return nil
	}

	if id == "" {
		id = uuid.NewString()
		r.sm.Put(ctx, SessionIDKey, id)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

var (
	_ Repository = (*SessionRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
)
