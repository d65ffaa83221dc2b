package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// window represents the fixed window state of one key.
type window struct {
	count int
	start time.Time
}

func (w *window) expired(now time.Time, length time.Duration) bool {
	return !now.Before(w.start.Add(length))
}

// MemoryStore implements Store interface using in-memory storage.
// State is process local: several service instances do not share budgets.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time

	cleanupInterval time.Duration
	staleAfter      time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for removing stale windows.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithClock replaces time.Now, mainly for tests that need to move past a window.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory store with optional cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		windows:         make(map[string]*window),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

// Consume checks and records one consumption under the store lock.
func (ms *MemoryStore) Consume(ctx context.Context, key string, config Config) (Result, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	w, exists := ms.windows[key]
	if !exists || w.expired(now, config.Window) {
		w = &window{start: now}
		ms.windows[key] = w
	}

	res := Result{
		Limit:   config.Limit,
		ResetAt: w.start.Add(config.Window),
	}

	if w.count >= config.Limit {
		res.Remaining = 0
		return res, nil
	}

	w.count++
	res.Allowed = true
	res.Remaining = config.Limit - w.count

	return res, nil
}

// Peek reports the window for key without consuming.
func (ms *MemoryStore) Peek(ctx context.Context, key string, config Config) (Result, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	w, exists := ms.windows[key]
	if !exists || w.expired(now, config.Window) {
		return Result{
			Allowed:   true,
			Limit:     config.Limit,
			Remaining: config.Limit,
			ResetAt:   now.Add(config.Window),
		}, nil
	}

	return Result{
		Allowed:   w.count < config.Limit,
		Limit:     config.Limit,
		Remaining: max(config.Limit-w.count, 0),
		ResetAt:   w.start.Add(config.Window),
	}, nil
}

func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.windows, key)
	return nil
}

// Flush drops the state of every key.
func (ms *MemoryStore) Flush() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.windows = make(map[string]*window)
}

// Len returns the number of tracked keys.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.windows)
}

// cleanup runs periodically to remove stale windows.
func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeStale()
		case <-ms.stopCleanup:
			return
		}
	}
}

// removeStale drops windows that started long ago to prevent memory leaks.
func (ms *MemoryStore) removeStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, w := range ms.windows {
		if now.Sub(w.start) > ms.staleAfter {
			delete(ms.windows, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopCleanup)
	})
}
