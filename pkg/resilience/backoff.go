package resilience

import (
	"math/rand"
	"time"
)

// ExponentialBackoff returns the delay before the given attempt (1-based).
// The raw delay doubles per attempt up to cap, then a jitter fraction is
// applied in both directions. The result is never negative.
func ExponentialBackoff(attempt int, base, cap time.Duration, jitter float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	raw := base << uint(attempt-1)
	if raw > cap || raw <= 0 {
		raw = cap
	}
	spread := time.Duration(float64(raw) * jitter)
	d := raw + time.Duration(rand.Int63n(int64(2*spread+1))) - spread
	if d < 0 {
		return 0
	}
	return d
}
