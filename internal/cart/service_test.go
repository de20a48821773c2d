// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariHaran212/Pawradize-sub000/internal/testutil"
)

// countingRepo records how many times Save is called.
type countingRepo struct {
	Repository
	saves   int
	saveErr error
}

func (r *countingRepo) Save(ctx context.Context, c *Cart) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.Repository.Save(ctx, c)
}

func TestService_FlushesEveryMutation(t *testing.T) {
	sm, ctx := sessionContext(t)
	repo := &countingRepo{Repository: NewSessionRepository(sm)}
	svc := NewService(repo, testutil.DiscardLogger())

	_, err := svc.Add(ctx, kibble)
	require.NoError(t, err)
	_, err = svc.Add(ctx, kibble)
	require.NoError(t, err)
	_, err = svc.Update(ctx, "p1", 4)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	assert.Equal(t, 5, repo.saves)
}

func TestService_AddTwiceYieldsOneLine(t *testing.T) {
	sm, ctx := sessionContext(t)
	svc := NewService(NewSessionRepository(sm), testutil.DiscardLogger())

	_, _ = svc.Add(ctx, kibble)
	c, err := svc.Add(ctx, kibble)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, svc.Count(ctx))
}

func TestService_CorruptCartStartsEmpty(t *testing.T) {
	sm, ctx := sessionContext(t)
	sm.Put(ctx, SessionKey, []byte(`nope`))
	svc := NewService(NewSessionRepository(sm), testutil.DiscardLogger())

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestService_SaveError(t *testing.T) {
	sm, ctx := sessionContext(t)
	boom := errors.New("disk full")
	svc := NewService(&countingRepo{Repository: NewSessionRepository(sm), saveErr: boom}, testutil.DiscardLogger())

	_, err := svc.Add(ctx, kibble)
	assert.ErrorIs(t, err, boom)
}
