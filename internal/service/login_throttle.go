package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"account-portal/internal/cache"
)

var ErrTooManyAttempts = errors.New("too many login attempts")

const loginAttemptsKeyPrefix = "login:attempts:"

// LoginThrottle counts failed logins per client in a fixed window. A nil
// *LoginThrottle allows everything.
type LoginThrottle struct {
	cache       cache.Cache
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle returns nil when maxAttempts is zero
func NewLoginThrottle(c cache.Cache, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 || c == nil {
		return nil
	}
	return &LoginThrottle{cache: c, maxAttempts: maxAttempts, window: window}
}

// Check returns ErrTooManyAttempts once client has used up its failures
func (t *LoginThrottle) Check(ctx context.Context, client string) error {
	if t == nil {
		return nil
	}
	val, err := t.cache.Get(ctx, loginAttemptsKeyPrefix+client)
	if errors.Is(err, cache.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read login attempts: %w", err)
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("corrupt login attempt counter %q: %w", val, err)
	}
	if count >= t.maxAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

// Fail records one failed attempt for client
func (t *LoginThrottle) Fail(ctx context.Context, client string) error {
	if t == nil {
		return nil
	}
	_, err := t.cache.Incr(ctx, loginAttemptsKeyPrefix+client, t.window)
	return err
}

// Reset forgets client's failures after a successful login
func (t *LoginThrottle) Reset(ctx context.Context, client string) error {
	if t == nil {
		return nil
	}
	return t.cache.Delete(ctx, loginAttemptsKeyPrefix+client)
}
