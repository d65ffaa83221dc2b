// Package ratelimiter provides per-key fixed window rate limiting with in-memory storage.
//
// A key may be consumed at most Config.Limit times per Config.Window. The window for a key
// starts with its first consumption and is replaced by a fresh one once it has elapsed.
// Denied consumptions leave the window untouched, so a client hammering a spent budget
// does not extend its own penalty.
//
// # Basic Usage
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewLimiter(store, ratelimiter.Config{
//		Limit:  10,
//		Window: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if _, err := limiter.Consume(ctx, "user:123"); err != nil {
//		if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
//			// reject the call
//		}
//		return err
//	}
//
// Check the window without consuming, or clear it:
//
//	result, err := limiter.Status(ctx, "user:123")
//	err = limiter.Reset(ctx, "user:123")
//
// Compose keys from several identifiers; long keys are hashed with FNV-1a:
//
//	key := ratelimiter.Key(tenantID, userID)
//
// # Memory Management
//
// The MemoryStore removes stale windows in the background:
//
//	store := ratelimiter.NewMemoryStore(
//		ratelimiter.WithCleanupInterval(10 * time.Minute),
//	)
//
// Disable cleanup by setting the interval to 0. Flush drops all state, which is what
// tests use to isolate themselves.
//
// # Thread Safety
//
// Consume is atomic per store: concurrent callers on the same key never exceed the budget.
// The store is process local; several instances of a service each keep their own budgets.
package ratelimiter
