package llm

import (
	"time"

	"golang.org/x/time/rate"
)

const defaultRequestsPerMinute = 30

// newRateLimiter returns a token bucket refilled at requestsPerMinute with a
// bucket of the same size.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}
