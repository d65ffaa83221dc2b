package ratelimiter

import "context"

// Store defines the interface for rate limit storage backends.
type Store interface {
	// Consume atomically checks the window for key and, when budget is left,
	// records one consumption. A denied call must leave the state untouched.
	Consume(ctx context.Context, key string, config Config) (Result, error)

	// Peek returns the current window state without consuming.
	Peek(ctx context.Context, key string, config Config) (Result, error)

	// Reset clears the rate limit state for the given key.
	Reset(ctx context.Context, key string) error
}
