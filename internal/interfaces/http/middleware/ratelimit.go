package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/infrastructure/ratelimit"
	"github.com/oysterbuild/backend/internal/shared/config"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

// RateLimit throttles requests per client. Authenticated requests are keyed
// by user id, anonymous ones by IP. When the limiter backend is unavailable
// requests pass through rather than blocking all traffic.
func RateLimit(limiter ratelimit.RateLimiter, cfg *config.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	limit := ratelimit.Limit{
		Requests: cfg.Requests,
		Window:   time.Duration(cfg.WindowSeconds) * time.Second,
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := CurrentUserID(c); ok {
			key = fmt.Sprintf("user:%d", userID)
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
