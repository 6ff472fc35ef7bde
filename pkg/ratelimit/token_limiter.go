package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a token-per-minute budget for LLM APIs. Consumed
// tokens are reported after each response; when the budget is exhausted the
// caller blocks until the window resets.
type TokenLimiter struct {
	mu        sync.Mutex
	limit     int
	remaining int
	resetAt   time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(perMinute int) *TokenLimiter {
	return &TokenLimiter{
		limit:     perMinute,
		remaining: perMinute,
		resetAt:   time.Now().Add(time.Minute),
	}
}

// Wait consumes the given number of tokens, blocking until the next window
// if the current budget is exhausted.
func (t *TokenLimiter) Wait(ctx context.Context, used int32) error {
	t.mu.Lock()
	t.refillLocked()
	t.remaining -= int(used)
	if t.remaining > 0 {
		t.mu.Unlock()
		return nil
	}
	wait := time.Until(t.resetAt)
	t.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// GetRemaining returns the tokens left in the current window.
func (t *TokenLimiter) GetRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refillLocked()
	return t.remaining
}

func (t *TokenLimiter) refillLocked() {
	if time.Now().After(t.resetAt) {
		t.remaining = t.limit
		t.resetAt = time.Now().Add(time.Minute)
	}
}
