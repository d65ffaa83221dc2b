package ratelimiter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Limiter enforces a fixed number of consumptions per key within a window.
type Limiter struct {
	store  Store
	config Config
}

// NewLimiter creates a new fixed window rate limiter.
func NewLimiter(store Store, config Config) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Limiter{
		store:  store,
		config: config,
	}, nil
}

// Consume records one consumption for key.
// Returns ErrRateLimitExceeded together with the result when the window budget is spent.
func (l *Limiter) Consume(ctx context.Context, key string) (*Result, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}

	res, err := l.store.Consume(ctx, key, l.config)
	if err != nil {
		return nil, err
	}
	if !res.Allowed {
		return &res, fmt.Errorf("%w: %d per %s, retry after %s",
			ErrRateLimitExceeded, l.config.Limit, l.config.Window, res.RetryAfter().Round(time.Millisecond))
	}

	return &res, nil
}

// Status returns the current window state without consuming.
func (l *Limiter) Status(ctx context.Context, key string) (*Result, error) {
	res, err := l.store.Peek(ctx, key, l.config)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Reset clears the window for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}
