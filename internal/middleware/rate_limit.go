package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/errs"
	"github.com/deppfellow/opl-checker/internal/server"
)

const rateLimitKeyPrefix = "ratelimit"

// RateLimitMiddleware counts requests per client in fixed windows kept in
// Redis.
type RateLimitMiddleware struct {
	server *server.Server
	now    func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		now:    time.Now,
	}
}

// Limit allows limit requests per client IP per window on endpoint. It is a
// no-op without Redis or with a zero limit, and lets requests through
// when Redis fails.
func (r *RateLimitMiddleware) Limit(endpoint string, limit int, window time.Duration) echo.MiddlewareFunc {
	if r.server.Redis == nil || limit <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := r.now()
			windowStart := now.Truncate(window)
			key := fmt.Sprintf("%s:%s:%s:%d", rateLimitKeyPrefix, endpoint, c.RealIP(), windowStart.Unix())

			ctx := c.Request().Context()
			pipe := r.server.Redis.TxPipeline()
			count := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				GetLogger(c).Warn().Err(err).Str("endpoint", endpoint).Msg("rate limiter unavailable")
				return next(c)
			}

			remaining := limit - int(count.Val())
			if remaining < 0 {
				remaining = 0
			}
			reset := windowStart.Add(window)

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if count.Val() > int64(limit) {
				header.Set(echo.HeaderRetryAfter, strconv.Itoa(int(reset.Sub(now).Seconds())+1))
				r.RecordRateLimitHit(endpoint)
				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
