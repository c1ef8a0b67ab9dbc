package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(NewMemoryStore(), 3, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "global")
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestLimiterWindowSlides(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(NewMemoryStore(), 2, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.True(t, allowed)

	now = now.Add(30 * time.Second)
	allowed, err = limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.False(t, allowed)

	// the first request falls out of the window
	now = now.Add(31 * time.Second)
	allowed, err = limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestLimiterDeniedRequestsAreNotRecorded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(NewMemoryStore(), 1, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.True(t, allowed)

	for i := 0; i < 5; i++ {
		now = now.Add(10 * time.Second)
		allowed, err = limiter.Allow(ctx, "global")
		require.NoError(t, err)
		require.False(t, allowed)
	}

	// a full window after the only recorded request, traffic resumes
	now = now.Add(11 * time.Second)
	allowed, err = limiter.Allow(ctx, "global")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(NewMemoryStore(), 1, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "assistant")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "payments")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "assistant")
	require.NoError(t, err)
	require.False(t, allowed)
}
