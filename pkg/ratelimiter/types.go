package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Allowed   bool      // Whether this consumption fit into the window budget
	Limit     int       // Maximum consumptions per window
	Remaining int       // Consumptions left in the current window
	ResetAt   time.Time // When the current window ends
}

// RetryAfter returns how long to wait before the next consumption can succeed.
// Returns 0 if the consumption was allowed.
func (r *Result) RetryAfter() time.Duration {
	return r.retryAfter(time.Now())
}

func (r *Result) retryAfter(now time.Time) time.Duration {
	if r.Allowed {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Config defines the fixed window configuration.
type Config struct {
	Limit  int           // Consumptions allowed per window
	Window time.Duration // Window length, measured from the first consumption
}

// DefaultConfig returns the upload budget: 10 consumptions per minute.
func DefaultConfig() Config {
	return Config{
		Limit:  10,
		Window: time.Minute,
	}
}
