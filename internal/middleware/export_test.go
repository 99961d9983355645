package middleware

import (
	"time"

	"github.com/vitasports/backend/internal/server"
)

// NewExhaustedRateLimit returns a limiter whose bucket is always empty.
func NewExhaustedRateLimit(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		cfg:    s.Config.RateLimit,
		bucket: &fakeBucket{state: bucketState{Allowed: false, RetryAfter: time.Second}},
	}
}
