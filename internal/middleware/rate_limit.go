package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vitasports/backend/internal/config"
	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/server"
)

// tokenBucketScript refills in whole intervals and takes one token. It
// returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

type bucketState struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type bucket interface {
	Take(ctx context.Context, key string) (bucketState, error)
}

type redisBucket struct {
	rdb redis.Scripter
	cfg *config.RateLimitConfig
	now func() time.Time
}

func (b *redisBucket) Take(ctx context.Context, key string) (bucketState, error) {
	ttl := max(int64(b.cfg.TTL/time.Second), 1)

	res, err := tokenBucketScript.Run(ctx, b.rdb, []string{key},
		b.now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		ttl,
	).Int64Slice()
	if err != nil {
		return bucketState{}, err
	}
	if len(res) != 3 {
		return bucketState{}, fmt.Errorf("unexpected token bucket result %v", res)
	}

	return bucketState{
		Allowed:    res[0] == 1,
		Remaining:  res[1],
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

// RateLimitMiddleware applies a per-client Redis token bucket. Redis errors
// let the request through.
type RateLimitMiddleware struct {
	server *server.Server
	cfg    *config.RateLimitConfig
	bucket bucket
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit
	if cfg == nil {
		cfg = config.DefaultRateLimitConfig()
	}

	m := &RateLimitMiddleware{server: s, cfg: cfg}
	if s.Redis != nil {
		m.bucket = &redisBucket{rdb: s.Redis, cfg: cfg, now: time.Now}
	}
	return m
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return r.LimitWith(nil)
}

// LimitWith answers limited requests with onLimited instead of a 429.
// Preflight requests are never counted.
func (r *RateLimitMiddleware) LimitWith(onLimited echo.HandlerFunc) echo.MiddlewareFunc {
	if !r.cfg.Enabled || r.bucket == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			key := rateKey(r.cfg, c)

			state, err := r.bucket.Take(c.Request().Context(), key)
			if err != nil {
				GetLogger(c).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(r.cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(state.Remaining, 10))

			if !state.Allowed {
				retry := int(math.Ceil(state.RetryAfter.Seconds()))
				h.Set("Retry-After", strconv.Itoa(retry))

				r.RecordRateLimitHit(c.Path())
				GetLogger(c).Warn().Str("key", key).Int("retry_after", retry).Msg("rate limit exceeded")

				if onLimited != nil {
					return onLimited(c)
				}
				return errs.NewTooManyRequestsError("Too many requests, please retry later")
			}

			return next(c)
		}
	}
}

func rateKey(cfg *config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	userID := GetUserID(c)

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		if userID == "" {
			userID = "anon"
		}
		parts = append(parts, "user", userID)
	default:
		if userID != "" {
			parts = append(parts, "user", userID)
		} else {
			parts = append(parts, "ip", ip)
		}
	}
	return strings.Join(parts, ":")
}

