package ratelimiter

import "errors"

// Package-level error definitions for rate limiter operations.
var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRateLimitExceeded indicates that the window budget for a key is spent.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrKeyRequired indicates that an empty key was passed to the limiter.
	ErrKeyRequired = errors.New("key is required")

	// ErrStoreRequired indicates that the limiter was built without a store.
	ErrStoreRequired = errors.New("store is required")
)
