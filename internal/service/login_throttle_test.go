package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-portal/internal/cache"
)

func TestLoginThrottle_LocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	defer c.Close()
	th := NewLoginThrottle(c, 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, th.Check(ctx, "10.0.0.1"))
		require.NoError(t, th.Fail(ctx, "10.0.0.1"))
	}
	assert.ErrorIs(t, th.Check(ctx, "10.0.0.1"), ErrTooManyAttempts)

	// Other clients are unaffected.
	assert.NoError(t, th.Check(ctx, "10.0.0.2"))

	require.NoError(t, th.Reset(ctx, "10.0.0.1"))
	assert.NoError(t, th.Check(ctx, "10.0.0.1"))
}

func TestLoginThrottle_Disabled(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	defer c.Close()

	th := NewLoginThrottle(c, 0, time.Minute)
	assert.Nil(t, th)

	for i := 0; i < 100; i++ {
		require.NoError(t, th.Fail(ctx, "ip"))
	}
	assert.NoError(t, th.Check(ctx, "ip"))
	assert.NoError(t, th.Reset(ctx, "ip"))
}

// corruptCache holds a non-numeric value under every key
type corruptCache struct{ cache.Cache }

func (corruptCache) Get(context.Context, string) (string, error) { return "nope", nil }

func TestLoginThrottle_CorruptCounter(t *testing.T) {
	ctx := context.Background()
	th := NewLoginThrottle(corruptCache{}, 3, time.Minute)

	err := th.Check(ctx, "ip")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooManyAttempts)
}
