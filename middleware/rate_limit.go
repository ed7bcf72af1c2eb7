package middleware

import (
	"fmt"
	"time"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/logger"
	"github.com/MileWise/milewise-backend/services"
	"github.com/gin-gonic/gin"
)

// RateLimiter limits requests per authenticated user (falling back to client
// IP) using the Redis-backed rate limit service. On Redis failure the request
// is let through so the API stays available when Redis is down.
func RateLimiter(limiter services.RateLimiterInterface, requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetUserID(c)
		if key == "" {
			key = c.ClientIP()
		}
		key = "optimize:" + key

		allowed, retryAfter, err := limiter.CheckLimit(c.Request.Context(), key, requestsPerWindow, window)
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			if retryAfter <= 0 {
				retryAfter = window
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerWindow))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(retryAfter.Seconds())))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerWindow))
		c.Next()
	}
}
